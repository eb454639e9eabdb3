package history

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Norgate-AV/swiftdriver/internal/config"
	"github.com/Norgate-AV/swiftdriver/internal/job"
)

// HashInvocation creates a unique hash for a driver invocation
// The hash is based on:
// - The expanded argument vector, in order
// - The working directory
// - Every configured tool path (sorted by tool name)
// - The contents of each input that is a regular file
func HashInvocation(args []string, workingDir string, inputs []string, cfg *config.Config) (string, error) {
	h := sha256.New()

	// NUL separators keep ["ab", "c"] and ["a", "bc"] apart
	h.Write([]byte(strings.Join(args, "\x00")))
	h.Write([]byte{0})
	h.Write([]byte(workingDir))
	h.Write([]byte{0})

	if cfg != nil {
		tools := make([]string, 0, len(job.Tools()))
		for _, t := range job.Tools() {
			tools = append(tools, t.Name()+"="+cfg.ToolPath(t))
		}
		sort.Strings(tools)
		h.Write([]byte(strings.Join(tools, "|")))
	}

	for _, input := range inputs {
		if info, err := os.Stat(input); err != nil || !info.Mode().IsRegular() {
			continue
		}

		sum, err := HashFile(input)
		if err != nil {
			return "", fmt.Errorf("failed to hash input file: %w", err)
		}

		h.Write([]byte(input + "=" + sum))
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashFile creates a hash of a file's content
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
