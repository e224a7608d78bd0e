/*
 * @Description: 文章列表、删除与创建的业务逻辑，数据全部来自远程网关，本地只保存页面状态
 */
package post

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/anzhiyu-c/nest-api-demo/pkg/constant"
	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/viewstate"
)

// 页面提示文案
const (
	MsgCreateSuccess = "文章创建成功！"
	MsgCreateFailed  = "创建失败，请重试"
	MsgDeleteFailed  = "删除失败"
	MsgLoadFailed    = "获取数据失败"
	MsgAuthorsFailed = "获取作者列表失败"
)

// Gateway 是文章服务依赖的网关能力
type Gateway interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	CreatePost(ctx context.Context, req model.CreatePostRequest) (*model.Post, error)
	DeletePost(ctx context.Context, id int) error
}

// Publisher 用于发布文章变更事件
type Publisher interface {
	Publish(topic constant.EventTopic, payload interface{})
}

// Service 文章服务
type Service struct {
	gateway   Gateway
	store     viewstate.Store
	bus       Publisher
	validator *Validator
	strategy  constant.DeleteStrategy
}

// NewService 创建文章服务
func NewService(gw Gateway, store viewstate.Store, bus Publisher, validator *Validator, strategy constant.DeleteStrategy) *Service {
	return &Service{
		gateway:   gw,
		store:     store,
		bus:       bus,
		validator: validator,
		strategy:  strategy,
	}
}

// Validator 返回表单校验器
func (s *Service) Validator() *Validator {
	return s.validator
}

// Fetch 并发获取文章和作者，任意一个失败则整体失败
func (s *Service) Fetch(ctx context.Context) (*model.PostListState, error) {
	var posts []model.Post
	var authors []model.Author

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.gateway.ListPosts(gctx)
		if err != nil {
			return fmt.Errorf("获取文章列表失败: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		authors, err = s.gateway.ListAuthors(gctx)
		if err != nil {
			return fmt.Errorf("获取作者列表失败: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if posts == nil {
		posts = []model.Post{}
	}
	if authors == nil {
		authors = []model.Author{}
	}
	return &model.PostListState{Posts: posts, Authors: authors}, nil
}

// ListState 返回当前页面的列表状态。reuse 为 false 时总是从网关重新加载并替换已保存的状态；
// 为 true 时（切换筛选条件、删除或刷新后的跳转）优先使用已保存的状态。
// 返回值中的 Flash 是一次性的，读取后即被清除。
func (s *Service) ListState(ctx context.Context, viewID string, reuse bool) (*model.PostListState, error) {
	flash := s.takeFlash(ctx, viewID)

	var state model.PostListState
	found := false
	if reuse {
		var err error
		found, err = s.store.Load(ctx, viewID, viewstate.NamePostList, &state)
		if err != nil {
			log.Printf("⚠️  读取列表页状态失败，将重新加载: %v", err)
		}
	}
	if !found {
		fresh, err := s.Refresh(ctx, viewID)
		if err != nil {
			return &model.PostListState{Flash: flash}, err
		}
		state = *fresh
	}

	state.Flash = flash
	return &state, nil
}

// Refresh 重新加载列表并整体替换已保存的状态，加载失败时清除旧状态
func (s *Service) Refresh(ctx context.Context, viewID string) (*model.PostListState, error) {
	state, err := s.Fetch(ctx)
	if err != nil {
		if delErr := s.store.Delete(ctx, viewID, viewstate.NamePostList); delErr != nil {
			log.Printf("⚠️  清除列表页状态失败: %v", delErr)
		}
		return &model.PostListState{}, err
	}
	s.saveList(ctx, viewID, state)
	return state, nil
}

// Delete 删除文章。成功后按策略从本地状态移除该文章或重新加载列表；
// 失败时本地状态保持不变，并留下一条“删除失败”的提示。
func (s *Service) Delete(ctx context.Context, viewID string, id int) error {
	if err := s.gateway.DeletePost(ctx, id); err != nil {
		s.setFlash(ctx, viewID, model.Flash{Kind: model.FlashError, Message: MsgDeleteFailed})
		return fmt.Errorf("删除文章 %d 失败: %w", id, err)
	}
	s.bus.Publish(constant.EventPostDeleted, id)

	if s.strategy == constant.DeleteOptimistic {
		var state model.PostListState
		found, err := s.store.Load(ctx, viewID, viewstate.NamePostList, &state)
		if err == nil && found {
			state.RemovePost(id)
			s.saveList(ctx, viewID, &state)
			return nil
		}
	}

	// 重新加载；失败时丢弃旧状态，下次访问列表页会再次加载
	state, err := s.Fetch(ctx)
	if err != nil {
		log.Printf("⚠️  删除后重新加载列表失败: %v", err)
		_ = s.store.Delete(ctx, viewID, viewstate.NamePostList)
		return nil
	}
	s.saveList(ctx, viewID, state)
	return nil
}

func (s *Service) saveList(ctx context.Context, viewID string, state *model.PostListState) {
	toSave := *state
	toSave.Flash = nil
	if err := s.store.Save(ctx, viewID, viewstate.NamePostList, &toSave); err != nil {
		log.Printf("⚠️  保存列表页状态失败: %v", err)
	}
}

func (s *Service) setFlash(ctx context.Context, viewID string, flash model.Flash) {
	if err := s.store.Save(ctx, viewID, viewstate.NameFlash, flash); err != nil {
		log.Printf("⚠️  保存提示信息失败: %v", err)
	}
}

func (s *Service) takeFlash(ctx context.Context, viewID string) *model.Flash {
	var flash model.Flash
	found, err := s.store.Load(ctx, viewID, viewstate.NameFlash, &flash)
	if err != nil || !found {
		return nil
	}
	_ = s.store.Delete(ctx, viewID, viewstate.NameFlash)
	return &flash
}
