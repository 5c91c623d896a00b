package minio

import (
	"context"
	"mime/multipart"

	"github.com/go-warden/warden/pkg/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// Minio holds object storage configuration, used for avatar uploads.
type Minio struct {
	AccessKeyId     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	UseTLS          bool   `mapstructure:"useTLS"`
}

func NewMinio(accessKeyID, secretAccessKey, endpoint, bucket string, useTLS bool) *Minio {
	return &Minio{
		AccessKeyId:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		Endpoint:        endpoint,
		Bucket:          bucket,
		UseTLS:          useTLS,
	}
}

func (m *Minio) Client() (*minio.Client, error) {
	minioClient, err := minio.New(m.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(m.AccessKeyId, m.SecretAccessKey, ""),
		Secure: m.UseTLS,
	})
	if err != nil {
		log.Errorf("minio client error: %v", err)
		return nil, err
	}
	return minioClient, nil
}

func (m *Minio) Upload(ctx context.Context, client *minio.Client, objectName string, file *multipart.FileHeader, contentType string) (minio.UploadInfo, error) {
	if err := m.checkBucket(ctx, client); err != nil {
		return minio.UploadInfo{}, err
	}

	src, err := file.Open()
	if err != nil {
		return minio.UploadInfo{}, err
	}
	defer src.Close()

	result, err := client.PutObject(ctx, m.Bucket, objectName, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return minio.UploadInfo{}, err
	}

	return result, nil
}

func (m *Minio) Download(ctx context.Context, client *minio.Client, objectName string) (*minio.Object, error) {
	if err := m.checkBucket(ctx, client); err != nil {
		return nil, err
	}
	obj, err := client.GetObject(ctx, m.Bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (m *Minio) checkBucket(ctx context.Context, client *minio.Client) error {
	exists, err := client.BucketExists(ctx, m.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Errorf("bucket %s not exists", m.Bucket)
	}
	return nil
}
