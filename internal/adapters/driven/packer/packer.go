// Package packer adapts the external archive codec binary to the
// driven.Packer port. The binary (yanyun, or a drop-in replacement) is
// the only thing that understands the archive's byte layout; this
// adapter just runs it and surfaces its stderr on failure.
package packer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/wwm-locale/localetool/internal/core/domain"
	"github.com/wwm-locale/localetool/internal/core/ports/driven"
	"github.com/wwm-locale/localetool/internal/logger"
)

// Ensure ExecPacker implements the interface.
var _ driven.Packer = (*ExecPacker)(nil)

// ExecPacker shells out to the configured packer binary.
type ExecPacker struct {
	binary string
}

// NewExecPacker creates a packer around the given binary path.
func NewExecPacker(binary string) (*ExecPacker, error) {
	if binary == "" {
		return nil, fmt.Errorf("%w: packer binary not configured", domain.ErrConfiguration)
	}
	return &ExecPacker{binary: binary}, nil
}

// Unpack runs `<binary> unpack <archive> <destDir>`.
func (p *ExecPacker) Unpack(ctx context.Context, archivePath, destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create unpack directory: %w", err)
	}
	return p.run(ctx, "unpack", archivePath, destDir)
}

// Pack runs `<binary> pack <archive> <fragmentsDir> <outPath>`.
func (p *ExecPacker) Pack(ctx context.Context, archivePath, fragmentsDir, outPath string) error {
	return p.run(ctx, "pack", archivePath, fragmentsDir, outPath)
}

// run executes the packer binary with the given arguments.
func (p *ExecPacker) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, p.binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("running packer: %s %v", p.binary, args)
	if err := cmd.Run(); err != nil {
		msg := bytes.TrimSpace(stderr.Bytes())
		if len(msg) > 0 {
			return fmt.Errorf("packer %s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("packer %s: %w", args[0], err)
	}
	return nil
}
