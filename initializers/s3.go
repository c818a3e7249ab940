package initializers

import (
	"context"
	"survey-package-backend/config"
	filestorage "survey-package-backend/lib/file-storage"
	s3client "survey-package-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName)
	if err != nil {
		log.WithError(err).Error("S3 соединение не удалось, бакет не создан")
	}

	s3client.Client = minioClient
	filestorage.NewHandler(minioClient, config.Conf.S3.BucketName)
	log.Info("S3 клиент успешно инициализирован")
}
