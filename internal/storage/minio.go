package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

// MinIO 提供原始上传文件的归档存储。
// 归档是旁路能力，MinIO不可用时上传流程照常进行。
type MinIO struct {
	client         *minio.Client
	cfg            *config.MinIOConfig
	originalBucket string
}

// NewMinIO 创建MinIO客户端并确保存储桶存在
func NewMinIO(cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("MinIO endpoint不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	bucket := cfg.OriginalsBucket
	if bucket == "" {
		bucket = "resume-originals"
	}

	m := &MinIO{
		client:         client,
		cfg:            cfg,
		originalBucket: bucket,
	}

	if err := m.ensureBucketExists(bucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保存储桶 %s 存在失败: %w", bucket, err)
	}

	if cfg.OriginalFileExpireDays > 0 {
		if err := m.setupBucketLifecycle(context.Background(), bucket, cfg.OriginalFileExpireDays); err != nil {
			logger.Warn().Err(err).Str("bucket", bucket).Msg("设置存储桶生命周期规则失败")
		}
	}

	return m, nil
}

func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶是否存在失败: %w", err)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		// 并发创建时可能已被其他实例建好
		exists, errCheck := m.client.BucketExists(ctx, bucketName)
		if errCheck == nil && exists {
			return nil
		}
		return fmt.Errorf("创建存储桶失败: %w", err)
	}
	return nil
}

func (m *MinIO) setupBucketLifecycle(ctx context.Context, bucketName string, expireDays int) error {
	lcCfg := lifecycle.NewConfiguration()
	lcCfg.Rules = []lifecycle.Rule{
		{
			ID:     "expire-original-uploads",
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(expireDays),
			},
		},
	}
	return m.client.SetBucketLifecycle(ctx, bucketName, lcCfg)
}

// UploadOriginalFile 归档一份原始上传文件，返回对象存储路径
func (m *MinIO) UploadOriginalFile(ctx context.Context, resumeID, fileExt string, data []byte) (string, error) {
	objectName := path.Join("originals", resumeID+fileExt)

	contentType := "application/octet-stream"
	switch fileExt {
	case ".pdf":
		contentType = "application/pdf"
	case ".docx":
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		contentType = "text/plain"
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	}

	_, err := m.client.PutObject(ctx, m.originalBucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("上传原始文件到MinIO失败: %w", err)
	}
	return fmt.Sprintf("minio://%s/%s", m.originalBucket, objectName), nil
}

// DownloadOriginalFile 取回归档的原始文件
func (m *MinIO) DownloadOriginalFile(ctx context.Context, resumeID, fileExt string) ([]byte, error) {
	objectName := path.Join("originals", resumeID+fileExt)

	obj, err := m.client.GetObject(ctx, m.originalBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("从MinIO获取对象失败: %w", err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("读取MinIO对象内容失败: %w", err)
	}
	return buf.Bytes(), nil
}
