//go:build !darwin && !linux

package platform

func autoKind() string { return KindRobotgo }

func newNativeSink(string) (Sink, error) { return nil, ErrUnsupported }

func nativeInfo(kind string) SinkInfo {
	return SinkInfo{Kind: kind, Detail: "linux only"}
}

func robotgoInfo() SinkInfo {
	return SinkInfo{Kind: KindRobotgo, Available: true, Detail: "native input injection"}
}
