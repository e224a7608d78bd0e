package model

import "time"

// GitHubRepository 是网关 /github/repositories 返回的仓库信息
type GitHubRepository struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	Private         bool      `json:"private"`
	HTMLURL         string    `json:"html_url"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PlaceholderPost 是演示列表页使用的占位文章
type PlaceholderPost struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}
