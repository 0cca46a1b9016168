package oss

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration 读取媒体文件时长(秒)
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "Failed to probe the media file")
	}
	return parseDuration(out)
}

func parseDuration(probeOutput string) (float64, error) {
	var result probeResult
	if err := json.Unmarshal([]byte(probeOutput), &result); err != nil {
		return 0, errors.Wrap(err, "decode probe output")
	}
	if result.Format.Duration == "" {
		return 0, errors.New("probe output has no duration")
	}
	duration, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse duration")
	}
	return duration, nil
}
