package post

import (
	"context"
	"fmt"
	"log"

	"github.com/anzhiyu-c/nest-api-demo/pkg/constant"
	"github.com/anzhiyu-c/nest-api-demo/pkg/domain/model"
	"github.com/anzhiyu-c/nest-api-demo/pkg/service/viewstate"
)

// CreateResult 是提交创建表单的结果
type CreateResult struct {
	Authors []model.Author
	Errors  model.FieldErrors
	Created *model.Post
}

// PrepareCreate 加载作者列表并保存到创建页状态。
// 只有一位作者时默认选中；加载失败时返回空的作者列表和错误。
func (s *Service) PrepareCreate(ctx context.Context, viewID string) ([]model.Author, model.PostForm, error) {
	form := model.PostForm{}

	authors, err := s.gateway.ListAuthors(ctx)
	if err != nil {
		return []model.Author{}, form, fmt.Errorf("获取作者列表失败: %w", err)
	}
	if authors == nil {
		authors = []model.Author{}
	}

	if len(authors) == 1 {
		form.AuthorID = authors[0].Key()
	}

	if err := s.store.Save(ctx, viewID, viewstate.NamePostCreate, model.PostCreateState{Authors: authors}); err != nil {
		log.Printf("⚠️  保存创建页状态失败: %v", err)
	}
	return authors, form, nil
}

// Create 校验并提交表单。
//   - 创建页状态已过期：返回 constant.ErrViewExpired，不发起网络请求
//   - 校验失败：result.Errors 非空，不发起网络请求
//   - 网关失败：返回错误，result 中保留作者列表
//   - 成功：发布事件，为列表页留下成功提示并使其在下次访问时重新加载
func (s *Service) Create(ctx context.Context, viewID string, form model.PostForm) (*CreateResult, error) {
	var state model.PostCreateState
	found, err := s.store.Load(ctx, viewID, viewstate.NamePostCreate, &state)
	if err != nil || !found {
		return &CreateResult{Authors: []model.Author{}, Errors: model.FieldErrors{}}, constant.ErrViewExpired
	}

	result := &CreateResult{Authors: state.Authors, Errors: s.validator.Validate(form)}
	if result.Errors.HasErrors() {
		return result, nil
	}

	created, err := s.gateway.CreatePost(ctx, form.ToCreateRequest())
	if err != nil {
		return result, fmt.Errorf("创建文章失败: %w", err)
	}
	result.Created = created

	s.bus.Publish(constant.EventPostCreated, created)
	s.setFlash(ctx, viewID, model.Flash{Kind: model.FlashSuccess, Message: MsgCreateSuccess})
	if err := s.store.Delete(ctx, viewID, viewstate.NamePostList); err != nil {
		log.Printf("⚠️  清除列表页状态失败: %v", err)
	}
	if err := s.store.Delete(ctx, viewID, viewstate.NamePostCreate); err != nil {
		log.Printf("⚠️  清除创建页状态失败: %v", err)
	}
	return result, nil
}
