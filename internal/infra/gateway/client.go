// internal/infra/gateway/client.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
)

// 网关资源路径
const (
	PathUsers        = "/database/users"
	PathPosts        = "/database/posts"
	PathRepositories = "/github/repositories"
)

// responseCacheKeyPrefix 网关 GET 响应缓存键前缀
const responseCacheKeyPrefix = "gateway:resp:"

// ErrTransport 表示本地/传输层失败：网络不可达、读取响应失败、响应无法解析。
// 这是本系统唯一的本地错误类型，与网关返回的业务错误 (*UpstreamError) 相互区分。
var ErrTransport = errors.New("网关请求失败")

// UpstreamError 表示网关返回了非 2xx 状态码，状态码与响应体原样保留
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("网关返回错误状态: %d", e.Status)
}

// Response 是网关的原始响应，代理层会原样转发
type Response struct {
	Status int
	Body   []byte
}

// OK 状态码是否为 2xx
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// ResponseCache 是网关响应缓存所需的最小接口，utility.CacheService 满足它
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Options 网关客户端配置
type Options struct {
	BaseURL string
	// Timeout 为 0 时不设置客户端超时
	Timeout time.Duration
	// Cache 为 nil 或 CacheTTL <= 0 时不缓存
	Cache    ResponseCache
	CacheTTL time.Duration
}

// Client 是远程数据网关的 HTTP 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      ResponseCache
	cacheTTL   time.Duration
}

// NewClient 创建网关客户端
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:    opts.BaseURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
	if opts.Cache != nil && opts.CacheTTL > 0 {
		c.cache = opts.Cache
		c.cacheTTL = opts.CacheTTL
	}
	return c
}

// BaseURL 返回网关地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do 向网关发送请求并返回原始响应。
// 只有传输失败或响应体不是合法 JSON 时返回 ErrTransport；非 2xx 状态不视为错误。
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*Response, error) {
	cacheable := method == http.MethodGet && c.cache != nil
	if cacheable {
		if cached, err := c.cache.Get(ctx, responseCacheKeyPrefix+path); err == nil && cached != "" {
			return &Response{Status: http.StatusOK, Body: []byte(cached)}, nil
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: 创建请求失败: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取响应失败: %v", ErrTransport, err)
	}

	if len(bytes.TrimSpace(data)) > 0 && !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s %s 响应不是合法的 JSON", ErrTransport, method, path)
	}

	if cacheable && resp.StatusCode == http.StatusOK && len(data) > 0 {
		if err := c.cache.Set(ctx, responseCacheKeyPrefix+path, data, c.cacheTTL); err != nil {
			log.Printf("⚠️  写入网关响应缓存失败 (%s): %v", path, err)
		}
	}

	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// Invalidate 删除指定路径的 GET 响应缓存
func (c *Client) Invalidate(ctx context.Context, paths ...string) error {
	if c.cache == nil || len(paths) == 0 {
		return nil
	}
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = responseCacheKeyPrefix + p
	}
	return c.cache.Delete(ctx, keys...)
}

// Purge 删除全部网关响应缓存，返回删除的键数量
func (c *Client) Purge(ctx context.Context) (int, error) {
	if c.cache == nil {
		return 0, nil
	}
	keys, err := c.cache.Scan(ctx, responseCacheKeyPrefix+"*")
	if err != nil {
		return 0, fmt.Errorf("查找网关响应缓存失败: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		return 0, fmt.Errorf("删除网关响应缓存失败: %w", err)
	}
	return len(keys), nil
}

// getJSON 发起 GET 请求并解码 2xx 响应
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func decode(resp *Response, out interface{}) error {
	if !resp.OK() {
		return &UpstreamError{Status: resp.Status, Body: resp.Body}
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: 解析响应失败: %v", ErrTransport, err)
	}
	return nil
}

// ListPosts 获取全部文章
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := c.getJSON(ctx, PathPosts, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListAuthors 获取全部作者（users 集合）
func (c *Client) ListAuthors(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	if err := c.getJSON(ctx, PathUsers, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

// ListRepositories 获取 GitHub 仓库列表
func (c *Client) ListRepositories(ctx context.Context) ([]model.GitHubRepository, error) {
	var repos []model.GitHubRepository
	if err := c.getJSON(ctx, PathRepositories, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// CreatePost 创建文章，网关未返回文章内容时第一个返回值为 nil
func (c *Client) CreatePost(ctx context.Context, req model.CreatePostRequest) (*model.Post, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}
	resp, err := c.Do(ctx, http.MethodPost, PathPosts, body)
	if err != nil {
		return nil, err
	}

	var created *model.Post
	if err := decode(resp, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// DeletePost 删除文章
func (c *Client) DeletePost(ctx context.Context, id int) error {
	resp, err := c.Do(ctx, http.MethodDelete, PathPosts+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

// Ping 请求健康检查路径，非 2xx 视为不健康
func (c *Client) Ping(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: 创建请求失败: %v", ErrTransport, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{Status: resp.StatusCode}
	}
	return nil
}

// FetchJSON 请求任意绝对地址并解码 JSON，用于演示页的占位数据源
func (c *Client) FetchJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: 创建请求失败: %v", ErrTransport, err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: 读取响应失败: %v", ErrTransport, err)
	}
	return decode(&Response{Status: resp.StatusCode, Body: data}, out)
}
