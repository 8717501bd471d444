package main

import (
	"context"
	"log"

	"github.com/sysreport/sysreport/internal/api"
	"github.com/sysreport/sysreport/internal/config"
	"github.com/sysreport/sysreport/internal/export"
	"github.com/sysreport/sysreport/internal/hw"
	"github.com/sysreport/sysreport/internal/report"
	"github.com/sysreport/sysreport/internal/theme"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	configFile := pflag.String("config", "", "config file (default is ./sysreport.yaml)")
	pflag.String("listen", "127.0.0.1:8080", "address the panel listens on")
	pflag.Parse()
	viper.BindPFlag(config.KeyListen, pflag.Lookup("listen"))

	cfg, err := config.Load(viper.GetViper(), *configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	mode, err := theme.ParseMode(cfg.Theme, theme.HostDefault())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	th := theme.New(mode, theme.Icons{Light: cfg.IconLight, Dark: cfg.IconDark})

	collector := hw.NewCollector(hw.Options{
		PublicIPURL:     cfg.PublicIPURL,
		PublicIPTimeout: cfg.PublicIPTimeout,
		Logger:          log.Default(),
	})
	sections := report.Collect(context.Background(), report.Catalog(collector), log.Default())

	apiHandler := api.NewAPIHandler(sections, th, export.Exporter{LogoPath: cfg.LogoPath})
	r := api.NewRouter(apiHandler)

	log.Printf("serving system information on http://%s", cfg.Listen)
	if err := r.Run(cfg.Listen); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
