package source

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/nikmy/adminui/internal/members"
	"github.com/nikmy/adminui/pkg/errors"
)

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func NewS3(ctx context.Context, cfg S3Config) (*s3Source, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, errors.Error("bucket and key must be set")
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	switch {
	case cfg.AccessKey != "":
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	case !cfg.UseDefaultChain:
		opts = append(opts, config.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.WrapFail(err, "load aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Source{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

type s3Source struct {
	client objectGetter
	bucket string
	key    string
}

func (s *s3Source) Fetch(ctx context.Context) ([]members.Record, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, errors.WrapFailf(err, "get s3://%s/%s", s.bucket, s.key)
	}
	defer out.Body.Close()

	return decodeReader(out.Body)
}

func (s *s3Source) Close(context.Context) error {
	return nil
}
