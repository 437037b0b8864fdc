// Package deps checks that the external tools a producer shells out to can be
// found on PATH.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/samber/lo"

	"zenfeeds/internal/config"
)

// Requirement names an executable and whether the current configuration
// needs it.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the result of looking up one Requirement.
type Status struct {
	Requirement
	Available bool
	// Path is the resolved executable when Available.
	Path   string
	Detail string
}

// CheckBinaries resolves every requirement, preserving order.
func CheckBinaries(requirements []Requirement) []Status {
	return lo.Map(requirements, func(req Requirement, _ int) Status {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		status := Status{Requirement: req}
		if req.Command == "" {
			status.Detail = "command not configured"
			return status
		}
		path, err := exec.LookPath(req.Command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
			return status
		}
		status.Available = true
		status.Path = path
		return status
	})
}

// Requirements lists the external binaries a configuration may use. The
// gemini CLI is only required when it is the selected producer.
func Requirements(cfg *config.Config) []Requirement {
	if cfg == nil {
		return nil
	}
	return []Requirement{
		{
			Name:        "Gemini CLI",
			Command:     cfg.Gemini.Binary,
			Description: "Generates titles, summaries and essays for the gemini producer",
			Optional:    cfg.Sync.Producer != config.ProducerGemini,
		},
	}
}
