package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/configs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/enums"
)

type MinioService struct {
	minioClient *minio.Client
	config      *configs.Config
	logger      *slog.Logger
}

func NewMinioService(config *configs.Config, logger *slog.Logger) (*MinioService, error) {
	endpoint := config.Viper.GetString("minio.endpoint")
	accessKeyID := config.Viper.GetString("minio.access_key")
	secretAccessKey := config.Viper.GetString("minio.secret_key")
	useSSL := config.Viper.GetBool("minio.use_ssl")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	service := &MinioService{
		minioClient: minioClient,
		config:      config,
		logger:      logger,
	}
	for _, bucket := range []string{enums.FILE_BUCKET_USER_PROFILE, enums.FILE_BUCKET_LISTING_PHOTOS} {
		if err := service.ensureBucket(bucket); err != nil {
			return nil, err
		}
	}
	return service, nil
}

func (ms *MinioService) ensureBucket(bucketName string) error {
	err := ms.minioClient.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := ms.minioClient.BucketExists(context.Background(), bucketName)
		if errBucketExists == nil && exists {
			return nil
		}
		return err
	}
	ms.logger.Info("created bucket", "bucket", bucketName)
	return nil
}

func (ms *MinioService) UploadFile(fileName string, file io.Reader, fileSize int64, contentType string, bucketName string) (string, error) {
	info, err := ms.minioClient.PutObject(context.Background(), bucketName, fileName, file, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		ms.logger.Error("minio upload failed", "bucket", bucketName, "file", fileName, "error", err)
		return "", err
	}
	return ms.publicFileURL(bucketName, info.Key), nil
}

func (ms *MinioService) publicFileURL(bucketName, fileKey string) string {
	externalEndpoint := ms.config.Viper.GetString("minio.external_endpoint")
	if externalEndpoint == "" {
		externalEndpoint = ms.config.Viper.GetString("minio.endpoint")
	}
	return fmt.Sprintf("http://%s/%s/%s", externalEndpoint, bucketName, fileKey)
}
