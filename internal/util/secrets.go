package util

import (
	"encoding/json"
	"fmt"
	"os"
)

type Secrets struct {
	OpenAIApiKey string        `json:"openai"`
	Alpaca       AlpacaSecrets `json:"alpaca"`
}

type AlpacaSecrets struct {
	ApiKey    string `json:"apiKey"`
	ApiSecret string `json:"apiSecret"`
	Endpoint  string `json:"endpoint"`
}

// LoadSecrets reads the API credentials file. Everything in it is optional:
// without Alpaca keys current prices come from Yahoo, and without an OpenAI
// key the describe endpoint is disabled.
func LoadSecrets() (*Secrets, error) {
	secretsFile := "secrets.json"
	if os.Getenv("THEMESIM_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("THEMESIM_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}

	f, err := os.ReadFile(secretsFile)
	if os.IsNotExist(err) {
		return &Secrets{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	secrets := Secrets{}
	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, err
	}

	return &secrets, nil
}
