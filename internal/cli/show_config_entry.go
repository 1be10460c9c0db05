package codsim

import (
	"io"

	"github.com/k0kubun/pp"
	"github.com/mwiater/codsim/internal/appconfig"
	"github.com/spf13/viper"
)

func runShowConfig(out io.Writer) {
	cfg := GetConfig()
	appconfig.ShowConfig(out, viper.ConfigFileUsed(), cfg, appconfig.Config{})
	if cfg.Debug {
		_, _ = pp.Fprintln(out, cfg)
	}
}
