package model

// --- 页面状态 (View State) ---
// 以下结构以 JSON 形式保存在缓存中，每个浏览器一份。

// Flash 是一次性提示，渲染后即被清除
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// 提示类型
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// PostListState 是文章列表页的本地状态
type PostListState struct {
	Posts   []Post   `json:"posts"`
	Authors []Author `json:"authors"`
	Flash   *Flash   `json:"flash,omitempty"`
}

// AuthorByID 在状态中查找作者
func (s *PostListState) AuthorByID(id int) (Author, bool) {
	for _, a := range s.Authors {
		if a.ID == id {
			return a, true
		}
	}
	return Author{}, false
}

// RemovePost 按 ID 移除一篇文章，返回是否找到
func (s *PostListState) RemovePost(id int) bool {
	for i, p := range s.Posts {
		if p.ID == id {
			s.Posts = append(s.Posts[:i:i], s.Posts[i+1:]...)
			return true
		}
	}
	return false
}

// PostCreateState 是创建文章页的本地状态
type PostCreateState struct {
	Authors []Author `json:"authors"`
}
