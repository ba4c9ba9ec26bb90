package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/anicoll/fusionbridge/cmd"
)

func main() {
	app := &cli.App{
		Name:   "fusionbridge",
		Usage:  "forwards FusionSolar realtime telemetry to a Domoticz hub",
		Action: cmd.BridgeCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "cookies-file",
				EnvVars:  []string{"COOKIES_FILE"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "fusion-base-url",
				EnvVars:  []string{"FUSION_BASE_URL"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "inverter-dn",
				EnvVars:  []string{"INVERTER_DN"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "meter-dn",
				EnvVars:  []string{"METER_DN"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "hub-host",
				EnvVars:  []string{"HUB_HOST"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "hub-user",
				EnvVars: []string{"HUB_USER"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "hub-pass",
				EnvVars: []string{"HUB_PASS"},
				Value:   "",
			},
			&cli.IntFlag{
				Name:    "hub-active-power-idx",
				EnvVars: []string{"HUB_ACTIVE_POWER_IDX"},
				Value:   77,
			},
			&cli.IntFlag{
				Name:    "hub-meter-idx",
				EnvVars: []string{"HUB_METER_IDX"},
				Value:   78,
			},
			&cli.DurationFlag{
				Name:    "hub-timeout",
				EnvVars: []string{"HUB_TIMEOUT"},
				Value:   10 * time.Second,
			},
			&cli.StringFlag{
				Name:    "push-url",
				EnvVars: []string{"PUSH_URL"},
				Value:   "https://api.pushbullet.com",
			},
			&cli.StringFlag{
				Name:    "push-token",
				EnvVars: []string{"PUSH_TOKEN"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "mqtt-host",
				EnvVars: []string{"MQTT_HOST"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "mqtt-user",
				EnvVars: []string{"MQTT_USER"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "mqtt-pass",
				EnvVars: []string{"MQTT_PASS"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "database-url",
				EnvVars: []string{"DATABASE_URL"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "schedule",
				EnvVars: []string{"SCHEDULE"},
				Usage:   "cron expression; empty runs a single cycle and exits",
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "INFO",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
