// Package sns sends verification codes as SMS through AWS SNS.
package sns

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"gitlab.com/tmsv2/tms-backend/pkg/errorx"
)

type Client struct {
	snsClient *sns.Client
}

func NewClient(ctx context.Context, region string) (*Client, error) {
	const op = "sns.NewClient"
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	return &Client{
		snsClient: sns.NewFromConfig(cfg),
	}, nil
}

func (c *Client) SendSMS(ctx context.Context, phone, message string) error {
	const op = "sns.Client.SendSMS"
	_, err := c.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &phone,
		Message:     &message,
	})
	return errorx.Wrap(err, op)
}
