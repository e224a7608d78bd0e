package constant

// 文章发布状态筛选值
const (
	StatusAll       = "all"
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// AuthorAll 表示不按作者筛选
const AuthorAll = "all"

// 删除文章后同步本地列表的策略
type DeleteStrategy string

const (
	// DeleteOptimistic 删除成功后直接从本地状态中移除该文章
	DeleteOptimistic DeleteStrategy = "optimistic"
	// DeleteRefetch 删除成功后重新从网关拉取整个列表
	DeleteRefetch DeleteStrategy = "refetch"
)

// ParseDeleteStrategy 解析配置值，未知值回退到 optimistic
func ParseDeleteStrategy(s string) DeleteStrategy {
	if DeleteStrategy(s) == DeleteRefetch {
		return DeleteRefetch
	}
	return DeleteOptimistic
}

// DefaultContentMinLength 文章内容的默认最少字符数
const DefaultContentMinLength = 10

// TitleMaxLength 文章标题的最大字符数
const TitleMaxLength = 200

// ExcerptLength 列表页摘要的最大字符数
const ExcerptLength = 200
