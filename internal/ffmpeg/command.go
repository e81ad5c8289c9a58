package ffmpeg

import (
	ffmpeggo "github.com/u2takey/ffmpeg-go"
)

// VideoJob describes a single video transform.
type VideoJob struct {
	InputPath   string
	OutputPath  string
	VideoFilter string
	AudioFilter string
	Encode      EncodeSettings
}

// VideoArgs returns the ffmpeg argv (without the binary) for a video job.
func VideoArgs(job VideoJob) []string {
	kwargs := NewOutputArgsBuilder().
		WithVideoFilter(job.VideoFilter).
		WithAudioFilter(job.AudioFilter).
		WithEncoder(job.Encode).
		Build()
	return outputArgs(job.InputPath, job.OutputPath, kwargs)
}

// ImageFilterArgs returns the argv for applying a filter to a still image.
func ImageFilterArgs(inputPath, outputPath, filter string) []string {
	kwargs := NewOutputArgsBuilder().WithVideoFilter(filter).Build()
	return outputArgs(inputPath, outputPath, kwargs)
}

// FrameArgs returns the argv for extracting the first frame of a video.
func FrameArgs(inputPath, outputPath string) []string {
	kwargs := NewOutputArgsBuilder().WithSingleFrame().Build()
	return outputArgs(inputPath, outputPath, kwargs)
}

func outputArgs(inputPath, outputPath string, kwargs ffmpeggo.KwArgs) []string {
	return ffmpeggo.Input(inputPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		GetArgs()
}
