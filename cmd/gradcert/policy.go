package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/gradcert/internal/common"
	"github.com/Veraticus/gradcert/internal/config"
	"github.com/Veraticus/gradcert/internal/policy"
)

func policyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the effective certification policy",
		Long: `Print the certification policy after defaults, the config file and GRADCERT_
environment variables are applied. The output is valid config.yaml content.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := config.LoadPolicy(viper.GetViper())
			if err != nil {
				return common.NewUserError("Invalid certification policy", err)
			}
			data, err := marshalPolicy(p)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func marshalPolicy(p *policy.Policy) ([]byte, error) {
	doc := struct {
		Policy policy.Config `yaml:"policy"`
	}{Policy: p.Config()}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode policy: %w", err)
	}
	return data, nil
}
