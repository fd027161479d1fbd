package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	langEN = "en"
	langZH = "zh"
)

var messages = map[string]map[string]string{
	langEN: {
		"title":            "File Gateway",
		"login_title":      "Sign in",
		"password":         "Password",
		"login":            "Log in",
		"logout":           "Log out",
		"invalid_password": "Invalid password",
		"upload":           "Upload",
		"storage_type":     "Storage",
		"storage_blob":     "Object store",
		"storage_struct":   "Database",
		"preview":          "Allow preview",
		"path":             "Folder",
		"files":            "Files",
		"no_files":         "No files yet.",
		"filename":         "Name",
		"size":             "Size",
		"created":          "Uploaded",
		"actions":          "Actions",
		"download":         "Download",
		"copy_link":        "Copy link",
		"delete":           "Delete",
		"confirm_delete":   "Delete this file?",
		"upload_failed":    "Upload failed",
		"delete_failed":    "Delete failed",
		"file_not_found":   "File not found",
		"file_required":    "File is required",
		"unauthorized":     "Authentication required",
	},
	langZH: {
		"title":            "文件网关",
		"login_title":      "登录",
		"password":         "密码",
		"login":            "登录",
		"logout":           "退出登录",
		"invalid_password": "密码错误",
		"upload":           "上传",
		"storage_type":     "存储方式",
		"storage_blob":     "对象存储",
		"storage_struct":   "数据库",
		"preview":          "允许预览",
		"path":             "目录",
		"files":            "文件列表",
		"no_files":         "暂无文件。",
		"filename":         "文件名",
		"size":             "大小",
		"created":          "上传时间",
		"actions":          "操作",
		"download":         "下载",
		"copy_link":        "复制链接",
		"delete":           "删除",
		"confirm_delete":   "确定删除该文件？",
		"upload_failed":    "上传失败",
		"delete_failed":    "删除失败",
		"file_not_found":   "文件未找到",
		"file_required":    "请选择文件",
		"unauthorized":     "需要登录",
	},
}

// langFromCtx picks the UI language from Accept-Language.
func langFromCtx(c *fiber.Ctx) string {
	if strings.Contains(c.Get(fiber.HeaderAcceptLanguage), "zh") {
		return langZH
	}
	return langEN
}

// msg returns the localized string for key, falling back to English.
func msg(lang, key string) string {
	if s, ok := messages[lang][key]; ok {
		return s
	}
	return messages[langEN][key]
}
