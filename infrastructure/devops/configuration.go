package devops

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Secrets is the yaml payload stored in SSM under one parameter, so the
// fleet shares a single source for the gate secret and signing key.
type Secrets struct {
	PresenceToken string `yaml:"presenceToken"`
	SigningSecret string `yaml:"signingSecret"`
	SummaryFrom   string `yaml:"summaryFrom"`
	SummaryTo     string `yaml:"summaryTo"`
}

var (
	once    sync.Once
	secrets *Secrets
	loadErr error
)

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	once.Do(func() {
		paramName := "timeclock-secrets"

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		var parsed Secrets
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		secrets = &parsed
	})

	return secrets, loadErr
}
