package repository

import (
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// monthBucketExpr 构建 MM/YY 月份分桶表达式，兼容 sqlite 与 postgres。
func monthBucketExpr(db *gorm.DB, column string) string {
	return monthBucketExprByDialect(dbDialectName(db), column)
}

func monthBucketExprByDialect(dialect, column string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "to_char(" + column + ", 'MM/YY')"
	default:
		// sqlite 没有两位年份占位符，取 %Y 的末两位
		return "strftime('%m/', " + column + ") || substr(strftime('%Y', " + column + "), 3, 2)"
	}
}

// likeOperator LIKE 操作符，postgres 下用 ILIKE 以忽略大小写。
func likeOperator(db *gorm.DB) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}
