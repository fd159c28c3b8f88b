package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

type ffmpeg struct {
	bin string
}

func New(bin string) *ffmpeg {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &ffmpeg{bin: bin}
}

// Mix lays a music track under the video's existing audio. The music is
// attenuated to the given volume ratio, the narration is untouched, the video
// stream is copied unmodified and the output is trimmed to the shorter input.
func (f *ffmpeg) Mix(ctx context.Context, video, music, output string, volume float64) error {
	filter := fmt.Sprintf("[1:a]volume=%s[music];[0:a][music]amix=inputs=2:duration=shortest[aout]",
		strconv.FormatFloat(volume, 'f', -1, 64))
	cmd := exec.CommandContext(ctx, f.bin, "-y",
		"-i", video,
		"-i", music,
		"-filter_complex", filter,
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		output)
	data, err := cmd.CombinedOutput()
	if err != nil {
		msg := string(data)
		return fmt.Errorf("ffmpeg: couldn't mix: %w: %s", err, msg)
	}
	return nil
}

func (f *ffmpeg) FadeOut(ctx context.Context, input, output string, duration time.Duration) error {
	cmd := exec.CommandContext(ctx, f.bin, "-y", "-i", input, "-af", fmt.Sprintf("afade=t=out:st=0:d=%d", +int(duration.Seconds())), output)
	data, err := cmd.CombinedOutput()
	if err != nil {
		msg := string(data)
		return fmt.Errorf("ffmpeg: couldn't fade out: %w: %s", err, msg)
	}
	return nil
}

func (f *ffmpeg) Cut(ctx context.Context, input, output string, end time.Duration) error {
	cmd := exec.CommandContext(ctx, f.bin, "-y", "-i", input, "-to", toText(end), "-acodec", "copy", output)
	data, err := cmd.CombinedOutput()
	if err != nil {
		msg := string(data)
		return fmt.Errorf("ffmpeg: couldn't cut: %w: %s", err, msg)
	}
	return nil
}

// Version checks that the ffmpeg binary is present and runnable.
func (f *ffmpeg) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, f.bin, "-version")
	data, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg: couldn't get version: %w: %s", err, string(data))
	}
	lines := strings.Split(string(data), "\n")
	return strings.TrimSpace(lines[0]), nil
}

func toText(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
