// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so that preset and
// model access can be mocked in tests (see core/storage/mocks). Both AWS S3
// and self-hosted MinIO are supported.
//
// # Helpers
//
//   - EnsureBucket: creates the configured bucket on first start.
//   - ReadObject / WriteObject: whole-object transfers used for presets and glTF models.
//   - ListKeys: recursive key listing that skips folder markers.
//
// Missing keys surface as ErrObjectNotFound.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, "presets/smile.json")
package storage
