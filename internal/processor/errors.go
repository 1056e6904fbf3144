package processor

import "errors"

// 服务层公共错误，handler据此映射错误码
var (
	ErrUnsupportedFileType = errors.New("不支持的文件类型")
	ErrFileTooLarge        = errors.New("文件大小超过限制")
	ErrEmptyFile           = errors.New("文件内容为空")
	ErrUnparseableFile     = errors.New("无法解析文件内容，请确保文件包含文本内容")
	ErrResumeNotFound      = errors.New("简历不存在")
)
