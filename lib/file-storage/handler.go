package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Provider interface {
	UploadLogo(ctx context.Context, packageUUID, fileName string, fileReader io.Reader, fileSize int64, contentType string) (key string, err error)
	GetFile(ctx context.Context, key string) ([]byte, error)
	DeleteFile(ctx context.Context, key string) error
}

var Instance Provider

func NewHandler(s3client *minio.Client, bucketName string) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func (i impl) UploadLogo(ctx context.Context, packageUUID, fileName string, fileReader io.Reader, fileSize int64, contentType string) (key string, err error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key = LogoKey(packageUUID, fileName)
	_, err = i.s3client.PutObject(ctx, i.bucketName, key, fileReader, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки логотипа в S3")
	}
	return key, nil
}

func (i impl) GetFile(ctx context.Context, key string) ([]byte, error) {
	obj, err := i.s3client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из S3")
	}
	defer obj.Close()
	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла из S3")
	}
	return body, nil
}

func (i impl) DeleteFile(ctx context.Context, key string) error {
	err := i.s3client.RemoveObject(ctx, i.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из S3")
	}
	return nil
}

func LogoKey(packageUUID, fileName string) string {
	return fmt.Sprintf("package_logo/%s/%s", packageUUID, path.Base(fileName))
}
