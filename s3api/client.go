package s3api

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	s3sherrors "github.com/kestrel-labs/s3sh/errors"
)

// Client supplies an authenticated backend client on demand. It wraps the
// AWS SDK S3 client behind the S3API interface so actions never touch the
// concrete SDK client directly.
type Client struct {
	cfg aws.Config

	s3 S3API
}

// New creates a new backend client provider. Credentials come from the AWS
// default credential chain unless a custom configuration is supplied.
//
// Example:
//
//	client, err := s3api.New(
//	    s3api.WithRegion("us-west-2"),
//	    s3api.WithEndpoint("http://localhost:4566"),
//	)
func New(opts ...Option) (*Client, error) {
	clientCfg := &ClientConfig{
		MaxRetries: 3,
	}
	for _, opt := range opts {
		opt(clientCfg)
	}

	var cfg aws.Config
	var err error

	if clientCfg.CustomAWSConfig != nil {
		cfg = *clientCfg.CustomAWSConfig
	} else {
		cfg, err = config.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, s3sherrors.NewError("client", err).WithMessage("load AWS configuration")
		}
	}

	if clientCfg.Region != "" {
		cfg.Region = clientCfg.Region
	} else if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	if clientCfg.MaxRetries > 0 {
		cfg.RetryMaxAttempts = clientCfg.MaxRetries
	}

	var s3Opts []func(*s3.Options)

	if clientCfg.Endpoint != "" {
		endpoint := clientCfg.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	if clientCfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	if clientCfg.Timeout > 0 {
		httpClient := &http.Client{
			Timeout: clientCfg.Timeout,
		}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	return &Client{
		cfg: cfg,
		s3:  s3.NewFromConfig(cfg, s3Opts...),
	}, nil
}

// NewWithAPI creates a client provider around a custom S3API
// implementation. This is primarily used for testing with mocked clients.
func NewWithAPI(api S3API) *Client {
	return &Client{s3: api}
}

// API returns the backend operation interface actions dispatch against.
func (c *Client) API() S3API {
	return c.s3
}
