package source

import "time"

type Kind string

const (
	KindHTTP  Kind = "http"
	KindS3    Kind = "s3"
	KindMongo Kind = "mongo"
)

const DefaultURL = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

type Config struct {
	Kind Kind `yaml:"kind"`

	HTTP  HTTPConfig  `yaml:"http"`
	S3    S3Config    `yaml:"s3"`
	Mongo MongoConfig `yaml:"mongo"`
}

type HTTPConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type S3Config struct {
	Region   string `yaml:"region"`
	Bucket   string `yaml:"bucket"`
	Key      string `yaml:"key"`
	Endpoint string `yaml:"endpoint"`

	// Without keys the object is read anonymously unless UseDefaultChain
	// is set.
	AccessKey       string `yaml:"accessKey"`
	SecretKey       string `yaml:"secretKey"`
	UseDefaultChain bool   `yaml:"useDefaultChain"`
}

type MongoConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`

	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`

	Auth struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
}
