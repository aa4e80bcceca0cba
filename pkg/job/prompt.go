// pkg/job/prompt.go
package job

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ErrAborted is returned when the operator chooses to stop the run at
// the abort/continue gate. Nothing after the gate executes.
var ErrAborted = errors.New("migration aborted by operator")

// PromptGate is the single interactive decision point of a run. When
// issues are found the operator either aborts the run or accepts the
// issues and continues; accepting triggers the onContinue action,
// typically writing the issue report.
type PromptGate struct {
	in     io.Reader
	out    io.Writer
	auto   bool
	logger *zap.Logger
}

// NewPromptGate creates a gate reading the operator's answer from
// stdin. With auto set, the gate never blocks and always continues.
func NewPromptGate(auto bool, logger *zap.Logger) *PromptGate {
	return &PromptGate{
		in:     os.Stdin,
		out:    os.Stderr,
		auto:   auto,
		logger: logger,
	}
}

// PromptOrReport asks the operator whether to abort or continue.
// Continuing runs onContinue and returns its error; aborting returns
// ErrAborted.
func (g *PromptGate) PromptOrReport(issueCount int, reportFileName string, onContinue func() error) error {
	if g.auto {
		g.logger.Warn("Issues found; auto-continue is enabled",
			zap.Int("issues", issueCount),
			zap.String("report", reportFileName))
	} else {
		fmt.Fprintf(g.out,
			"%d issue(s) found. Continue and write %s, or abort? [continue/abort]: ",
			issueCount, reportFileName)

		answer, err := bufio.NewReader(g.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read operator answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "continue", "c", "y", "yes":
			// fall through to onContinue
		default:
			g.logger.Warn("Operator aborted the run", zap.Int("issues", issueCount))
			return ErrAborted
		}
	}

	if onContinue != nil {
		return onContinue()
	}
	return nil
}
