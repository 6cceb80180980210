package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// ErrMalformedSecret is returned when the database secret is missing a
// required key or is not JSON.
var ErrMalformedSecret = errors.New("malformed database secret")

// CredentialProvider yields the connection string for the shoes database.
type CredentialProvider interface {
	ConnString(ctx context.Context) (string, error)
}

// DBCredentials are the fields of an RDS-style database secret.
type DBCredentials struct {
	Host     string
	Username string
	Password string
	DBName   string
	Port     int
}

// ConnString formats postgresql://<user>:<password>@<host>:<port>/<database>.
func (c DBCredentials) ConnString() string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.DBName,
	}
	return u.String()
}

// StaticConnString is a fixed connection string, used when DATABASE_URL is set.
type StaticConnString string

func (s StaticConnString) ConnString(ctx context.Context) (string, error) {
	return string(s), nil
}

// SecretsClient is the slice of the Secrets Manager API we call.
type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerProvider reads database credentials from AWS Secrets Manager.
type SecretsManagerProvider struct {
	Client     SecretsClient
	SecretName string
}

// NewSecretsManagerProvider loads the default AWS config for region.
func NewSecretsManagerProvider(ctx context.Context, region, secretName string) (*SecretsManagerProvider, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %w", err)
	}
	return &SecretsManagerProvider{
		Client:     secretsmanager.NewFromConfig(cfg),
		SecretName: secretName,
	}, nil
}

// Credentials fetches and decodes the secret. There is no retry.
func (p *SecretsManagerProvider) Credentials(ctx context.Context) (*DBCredentials, error) {
	out, err := p.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(p.SecretName),
	})
	if err != nil {
		return nil, fmt.Errorf("get secret %s: %w", p.SecretName, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("%w: secret %s has no SecretString", ErrMalformedSecret, p.SecretName)
	}

	creds, err := ParseDBSecret(*out.SecretString)
	if err != nil {
		return nil, err
	}
	log.Printf("[Secrets] Loaded credentials for %s@%s\n", creds.Username, creds.Host)
	return creds, nil
}

func (p *SecretsManagerProvider) ConnString(ctx context.Context) (string, error) {
	creds, err := p.Credentials(ctx)
	if err != nil {
		return "", err
	}
	return creds.ConnString(), nil
}

type dbSecret struct {
	Host     *string         `json:"host"`
	Username *string         `json:"username"`
	Password *string         `json:"password"`
	DBName   *string         `json:"dbInstanceIdentifier"`
	Port     json.RawMessage `json:"port"`
}

// ParseDBSecret decodes the secret JSON. port may be a number or a string.
func ParseDBSecret(secret string) (*DBCredentials, error) {
	var s dbSecret
	if err := json.Unmarshal([]byte(secret), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSecret, err)
	}

	required := []struct {
		key string
		val *string
	}{
		{"host", s.Host},
		{"username", s.Username},
		{"password", s.Password},
		{"dbInstanceIdentifier", s.DBName},
	}
	for _, r := range required {
		if r.val == nil {
			return nil, fmt.Errorf("%w: missing key %q", ErrMalformedSecret, r.key)
		}
	}

	port, err := parsePort(s.Port)
	if err != nil {
		return nil, err
	}

	return &DBCredentials{
		Host:     *s.Host,
		Username: *s.Username,
		Password: *s.Password,
		DBName:   *s.DBName,
		Port:     port,
	}, nil
}

func parsePort(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, fmt.Errorf("%w: missing key %q", ErrMalformedSecret, "port")
	}

	text := string(raw)
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		text = quoted
	}

	port, err := strconv.Atoi(text)
	if err != nil || port <= 0 {
		return 0, fmt.Errorf("%w: invalid port %s", ErrMalformedSecret, string(raw))
	}
	return port, nil
}
