package config

import (
	"flag"
	"io"
	"os"
	"strconv"
)

// Config holds all configuration for the pastebox service
type Config struct {
	Port             int    `json:"port"`
	TCPPort          int    `json:"tcp_port"`
	UploadDir        string `json:"upload_dir"`
	MaxContentLength int64  `json:"max_content_length"`
	AuthToken        string `json:"auth_token"`
	DefaultExtension string `json:"default_extension"`

	// Random name generation
	RandomNameEnabled   bool   `json:"random_name_enabled"`
	RandomNameType      string `json:"random_name_type"` // petname or alphanumeric
	RandomNameWords     int    `json:"random_name_words"`
	RandomNameSeparator string `json:"random_name_separator"`
	RandomNameLength    int    `json:"random_name_length"`

	// Alternative storage backends
	S3Bucket     string `json:"s3_bucket"`
	S3Prefix     string `json:"s3_prefix"`
	MongoURL     string `json:"mongo_url"`
	MongoDB      string `json:"mongo_db"`
	DynamoTable  string `json:"dynamo_table"`
	DynamoRegion string `json:"dynamo_region"`

	Version    string `json:"version"`
	BuildTime  string `json:"build_time"`
	CommitHash string `json:"commit_hash"`
}

// LoadConfig loads configuration from environment variables and CLI flags
func LoadConfig() *Config {
	config := &Config{
		Port:                8080,
		TCPPort:             0,
		UploadDir:           "./upload",
		MaxContentLength:    10 * 1024 * 1024, // 10MB
		DefaultExtension:    "txt",
		RandomNameType:      "petname",
		RandomNameWords:     2,
		RandomNameSeparator: "-",
		RandomNameLength:    8,
		MongoDB:             "pastebox",
		DynamoRegion:        "us-east-1",
	}

	// Parse CLI flags on a dedicated FlagSet so LoadConfig can be called
	// more than once (tests, Lambda cold starts).
	fs := flag.NewFlagSet("pastebox", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&config.Port, "port", config.Port, "Port to listen on")
	fs.IntVar(&config.TCPPort, "tcp-port", config.TCPPort, "TCP paste port (0 to disable)")
	fs.StringVar(&config.UploadDir, "upload-dir", config.UploadDir, "Upload directory")
	fs.Int64Var(&config.MaxContentLength, "max-content-length", config.MaxContentLength, "Maximum upload size in bytes")
	fs.StringVar(&config.AuthToken, "auth-token", config.AuthToken, "Authentication token for uploads")
	fs.StringVar(&config.DefaultExtension, "default-extension", config.DefaultExtension, "Extension for files whose type cannot be inferred")
	fs.BoolVar(&config.RandomNameEnabled, "random-names", config.RandomNameEnabled, "Replace submitted file names with generated ones")
	fs.StringVar(&config.RandomNameType, "random-name-type", config.RandomNameType, "Generated name style: petname or alphanumeric")
	fs.IntVar(&config.RandomNameWords, "random-name-words", config.RandomNameWords, "Word count for pet names")
	fs.StringVar(&config.RandomNameSeparator, "random-name-separator", config.RandomNameSeparator, "Separator for pet name words")
	fs.IntVar(&config.RandomNameLength, "random-name-length", config.RandomNameLength, "Length of alphanumeric names")
	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 bucket storage backend")
	fs.StringVar(&config.S3Prefix, "s3-prefix", config.S3Prefix, "S3 key prefix")
	fs.StringVar(&config.MongoURL, "mongo-url", config.MongoURL, "MongoDB storage backend URL")
	fs.StringVar(&config.MongoDB, "mongo-db", config.MongoDB, "MongoDB database name")
	fs.StringVar(&config.DynamoTable, "dynamo-table", config.DynamoTable, "DynamoDB storage backend table")
	fs.StringVar(&config.DynamoRegion, "dynamo-region", config.DynamoRegion, "DynamoDB region")
	_ = fs.Parse(os.Args[1:])

	// Override with environment variables if present
	if val := os.Getenv("PASTEBOX_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			config.Port = port
		}
	}
	if val := os.Getenv("PASTEBOX_TCP_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			config.TCPPort = port
		}
	}
	if val := os.Getenv("PASTEBOX_UPLOAD_DIR"); val != "" {
		config.UploadDir = val
	}
	if val := os.Getenv("PASTEBOX_MAX_CONTENT_LENGTH"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.MaxContentLength = size
		}
	}
	if val := os.Getenv("PASTEBOX_AUTH_TOKEN"); val != "" {
		config.AuthToken = val
	}
	if val := os.Getenv("PASTEBOX_DEFAULT_EXTENSION"); val != "" {
		config.DefaultExtension = val
	}
	if val := os.Getenv("PASTEBOX_RANDOM_NAMES"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			config.RandomNameEnabled = enabled
		}
	}
	if val := os.Getenv("PASTEBOX_RANDOM_NAME_TYPE"); val != "" {
		config.RandomNameType = val
	}
	if val := os.Getenv("PASTEBOX_RANDOM_NAME_WORDS"); val != "" {
		if words, err := strconv.Atoi(val); err == nil {
			config.RandomNameWords = words
		}
	}
	if val := os.Getenv("PASTEBOX_RANDOM_NAME_SEPARATOR"); val != "" {
		config.RandomNameSeparator = val
	}
	if val := os.Getenv("PASTEBOX_RANDOM_NAME_LENGTH"); val != "" {
		if length, err := strconv.Atoi(val); err == nil {
			config.RandomNameLength = length
		}
	}
	if val := os.Getenv("PASTEBOX_S3_BUCKET"); val != "" {
		config.S3Bucket = val
	}
	if val := os.Getenv("PASTEBOX_S3_PREFIX"); val != "" {
		config.S3Prefix = val
	}
	if val := os.Getenv("PASTEBOX_MONGO_URL"); val != "" {
		config.MongoURL = val
	}
	if val := os.Getenv("PASTEBOX_MONGO_DB"); val != "" {
		config.MongoDB = val
	}
	if val := os.Getenv("PASTEBOX_DYNAMO_TABLE"); val != "" {
		config.DynamoTable = val
	}
	if val := os.Getenv("PASTEBOX_DYNAMO_REGION"); val != "" {
		config.DynamoRegion = val
	}

	return config
}
