package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fairtrip/fairtrip/internal/core"
	"github.com/fairtrip/fairtrip/internal/output"
)

func DoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration, credentials, cache and provider health",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				output.JSONError("configuration invalid", err)
				return nil
			}
			defer a.Close()
			return output.JSON(doctorReport(a))
		},
	}
	return cmd
}

func doctorReport(a *app) core.DoctorReport {
	infos := a.router.ProviderInfos()

	active := 0
	var issues []string
	for _, p := range infos {
		switch p.Status {
		case "active":
			active++
		case "no_credentials":
			if missing := a.cfg.MissingCredentials(p.Name); len(missing) > 0 {
				issues = append(issues, fmt.Sprintf("%s: missing %s", p.Name, strings.Join(missing, ", ")))
			} else {
				issues = append(issues, fmt.Sprintf("%s: missing credentials", p.Name))
			}
		}
	}

	summary := fmt.Sprintf("%d/%d providers active (mode=%s, cache=%s)", active, len(infos), a.cfg.Mode, a.storeDesc)
	if len(issues) > 0 {
		summary += " | issues: " + strings.Join(issues, "; ")
	}

	return core.DoctorReport{
		Mode:      a.cfg.Mode,
		Providers: infos,
		Cache:     a.storeDesc,
		Healthy:   active > 0,
		Summary:   summary,
	}
}
