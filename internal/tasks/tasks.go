// Package tasks 定义后台任务的类型常量与 payload 结构。
package tasks

import "encoding/json"

// 定义任务类型常量
const (
	// TypeUploadSweep 是周期性的孤儿上传文件清理任务。
	// 文件写入和数据库写入不在一个事务里，两步之间出错会留下
	// 没有任何记录引用的文件，由该任务兜底回收。
	TypeUploadSweep = "uploads:sweep"
)

// UploadSweepPayload 定义清理任务的数据结构。
type UploadSweepPayload struct {
	// GraceSeconds 内新写入的文件不会被清理，
	// 避免删掉正在进行中的上传-落库流程刚写下的文件。
	GraceSeconds int64 `json:"grace_seconds"`
}

// NewUploadSweepTask 创建清理任务的 payload。
func NewUploadSweepTask(graceSeconds int64) ([]byte, error) {
	payload := UploadSweepPayload{GraceSeconds: graceSeconds}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return payloadBytes, nil
}
