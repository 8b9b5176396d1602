package api

import "github.com/resource-uploader/backend/internal/models"

// Messages returned in upload response bodies.
const (
	MsgUploadSucceeded = "文件上传成功"
	MsgUploadFailed    = "文件上传失败"
	MsgSaveFailed      = "文件保存失败"
)

// uploadSuccess is the body of a stored upload. Failures are also sent with
// HTTP 200; clients branch on the success/fail flags.
type uploadSuccess struct {
	Success bool               `json:"success"`
	Msg     string             `json:"msg"`
	Data    *models.StoredFile `json:"data"`
}

type uploadFailure struct {
	Fail bool   `json:"fail"`
	Msg  string `json:"msg"`
}

func newUploadSuccess(f *models.StoredFile) uploadSuccess {
	return uploadSuccess{Success: true, Msg: MsgUploadSucceeded, Data: f}
}

func newUploadFailure(msg string) uploadFailure {
	return uploadFailure{Fail: true, Msg: msg}
}
