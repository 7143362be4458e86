// Command s3kv is a small CLI over an s3os dict, for poking at a
// bucket from the shell.
//
// Connection settings come from the environment:
//
//	S3KV_ENDPOINT    object store endpoint (default "localhost:9000")
//	S3KV_ACCESS_KEY  access key ID
//	S3KV_SECRET_KEY  secret access key
//	S3KV_USE_SSL     "true" to connect over HTTPS
//	S3KV_BUCKET      bucket name (default "s3os")
//	S3KV_ID          dict ID (default "s3kv")
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MartinHowarth/s3os"
	"github.com/MartinHowarth/s3os/codec"
	"github.com/MartinHowarth/s3os/core"
	"github.com/MartinHowarth/s3os/minio"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newDict(ctx context.Context, logger *slog.Logger) (*s3os.Dict, error) {
	store, err := minio.NewStore(minio.Config{
		Endpoint:  envOr("S3KV_ENDPOINT", "localhost:9000"),
		AccessKey: os.Getenv("S3KV_ACCESS_KEY"),
		SecretKey: os.Getenv("S3KV_SECRET_KEY"),
		UseSSL:    os.Getenv("S3KV_USE_SSL") == "true",
	})
	if err != nil {
		return nil, err
	}

	api := s3os.New(store, codec.YAML{}, s3os.WithLogger(logger))
	return s3os.NewDict(ctx, api, nil,
		s3os.WithID(envOr("S3KV_ID", "s3kv")),
		s3os.WithBucket(core.BucketLocation{Name: envOr("S3KV_BUCKET", core.DefaultBucketName)}),
		// Each invocation is a fresh process; a local cache would never
		// get a second look.
		s3os.WithoutCache(),
	)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: s3kv <command> [args]

Commands:
  get <key>          print the value stored under key
  set <key> <value>  store a value (parsed as YAML) under key
  delete <key>       delete the value stored under key
  list               print all keys and values stored under this dict's ID
  clear              delete everything stored under this dict's ID`)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if os.Getenv("S3KV_DEBUG") == "true" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dict, err := newDict(ctx, logger)
	if err != nil {
		logger.Error("failed to create dict", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, dict, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dict *s3os.Dict, command string, args []string) error {
	switch command {
	case "get":
		if len(args) != 1 {
			return fmt.Errorf("usage: s3kv get <key>")
		}
		value, err := dict.Get(ctx, args[0])
		if err != nil {
			return err
		}
		return printValue(value)

	case "set":
		if len(args) != 2 {
			return fmt.Errorf("usage: s3kv set <key> <value>")
		}
		var value any
		if err := yaml.Unmarshal([]byte(args[1]), &value); err != nil {
			return fmt.Errorf("parse value: %w", err)
		}
		return dict.Set(ctx, args[0], value)

	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: s3kv delete <key>")
		}
		return dict.Delete(ctx, args[0])

	case "list":
		all, err := dict.GetAll(ctx)
		if err != nil {
			return err
		}
		return printValue(all)

	case "clear":
		return dict.Clear(ctx)

	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printValue(value any) error {
	out, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
