package service

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// 与前台登记表单一致的国际手机号格式
var phoneRe = regexp.MustCompile(`^\+?1?\d{9,15}$`)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var validGenders = map[string]bool{
	"M": true, "F": true, "O": true,
}

var validPaymentTypes = map[string]bool{
	"cash": true, "card": true, "upi": true, "cheque": true,
}

var validLeadStatuses = map[string]bool{
	"new": true, "contacted": true, "interested": true, "converted": true, "not_interested": true,
}

var validLeadSources = map[string]bool{
	"walk_in": true, "referral": true, "online": true,
	"advertisement": true, "social_media": true, "other": true,
}

// FieldErrors 字段级校验错误。一次校验收集全部问题再返回，
// 不在第一个错误处中断，前端可以整单展示。
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FieldErrors) Has() bool {
	return len(e) > 0
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], "; "))
	}
	return strings.Join(parts, "; ")
}

// AsFieldErrors 业务错误是否为字段校验错误
func AsFieldErrors(err error) (FieldErrors, bool) {
	fieldErrs, ok := err.(FieldErrors)
	return fieldErrs, ok
}

// parseDate 解析 YYYY-MM-DD 日期
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
