package main

import (
	"fmt"
	"time"

	"github.com/skupulse/skupulse-manager/config"
	"github.com/skupulse/skupulse-manager/internal/auth/jwt"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the analytics API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("cannot load a config %v", err.Error())
			}

			ttl := tokenTTL
			if ttl == 0 {
				ttl = cfg.Auth.TokenTTL
			}
			if ttl == 0 {
				ttl = 24 * time.Hour
			}

			ts, err := jwt.NewToken(jwt.NewAuth(cfg.Auth.Secret), ttl, tokenSubject)
			if err != nil {
				return fmt.Errorf("cannot mint token %v", err.Error())
			}
			fmt.Println(ts)
			return nil
		},
	}
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "token subject for audit logs")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to auth.token_ttl)")
}
