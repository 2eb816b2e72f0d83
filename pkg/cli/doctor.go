package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/detox-adapter/pkg/backend/detox"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
)

var doctorCommand = &cli.Command{
	Name:  "doctor",
	Usage: "Check connectivity to the automation server",
	Description: `Connect to the configured automation server, perform the login
handshake and report what the server knows about the device.`,
	Action: runDoctor,
}

func runDoctor(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	profile, err := resolveProfile(c, cfg)
	if err != nil {
		return err
	}
	if profile.Server == "" {
		return fmt.Errorf("no automation server configured; set --server or a profile in detox-adapter.yaml")
	}

	client := detox.NewClient(detox.Config{
		Server:    profile.Server,
		SessionID: profile.SessionID,
		Platform:  locator.Platform(profile.Platform),
		Logger:    log,
	})
	if err := client.Connect(); err != nil {
		return fmt.Errorf("server %s: %w", profile.Server, err)
	}
	defer client.Close()

	info := client.PlatformInfo()
	fmt.Fprintf(c.App.Writer, "Server:   %s (session %s)\n", profile.Server, profile.SessionID)
	fmt.Fprintf(c.App.Writer, "Platform: %s\n", info.Platform)
	if info.AppID != "" {
		fmt.Fprintf(c.App.Writer, "App:      %s\n", info.AppID)
	}
	if info.DeviceName != "" {
		fmt.Fprintf(c.App.Writer, "Device:   %s (%s)\n", info.DeviceName, info.DeviceID)
	}
	return nil
}
