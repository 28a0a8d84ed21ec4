package models

// LayoutType — формат отображения информационного узла.
type LayoutType string

const (
	LayoutText      LayoutType = "TEXT"
	LayoutTextImage LayoutType = "TEXT_IMAGE"
	LayoutGallery   LayoutType = "GALLERY"
)

// Лимиты изображений по типу узла.
const (
	TextImageNum = 1
	GalleryNum   = 10
)

func (l LayoutType) Valid() bool {
	switch l {
	case LayoutText, LayoutTextImage, LayoutGallery:
		return true
	}
	return false
}

// Node — информационный узел дерева диалога.
type Node struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Text       string     `json:"text"`
	LayoutType LayoutType `json:"layout_type"`
	ParentID   *int       `json:"parent_id"`
	IsActive   bool       `json:"is_active"`
}

// Button — кнопка перехода между узлами. Флаг is_active зеркалирует
// is_active целевого узла и пересчитывается при каждом его изменении.
type Button struct {
	ID           int    `json:"id"`
	SourceNodeID int    `json:"source_node_id"`
	TargetNodeID int    `json:"target_node_id"`
	Label        string `json:"label"`
	Order        int    `json:"order"`
	IsActive     bool   `json:"is_active"`
}

// Image — изображение, прикреплённое к узлу.
type Image struct {
	ID       int    `json:"id"`
	NodeID   int    `json:"node_id"`
	ImageURL string `json:"image_url"`
	FileName string `json:"file_name"`
	Order    int    `json:"order"`
}

// UpdateNodeRequest — частичное обновление узла.
type UpdateNodeRequest struct {
	Title      *string     `json:"title,omitempty"`
	Text       *string     `json:"text,omitempty"`
	LayoutType *LayoutType `json:"layout_type,omitempty"`
	ParentID   *int        `json:"parent_id,omitempty"`
	SetParent  bool        `json:"set_parent,omitempty"`
	IsActive   *bool       `json:"is_active,omitempty"`
}

// UpdateButtonRequest — частичное обновление кнопки.
type UpdateButtonRequest struct {
	SourceNodeID *int    `json:"source_node_id,omitempty"`
	TargetNodeID *int    `json:"target_node_id,omitempty"`
	Label        *string `json:"label,omitempty"`
	Order        *int    `json:"order,omitempty"`
}

// UpdateImageRequest — частичное обновление изображения.
type UpdateImageRequest struct {
	ImageURL *string `json:"image_url,omitempty"`
	FileName *string `json:"file_name,omitempty"`
	Order    *int    `json:"order,omitempty"`
}

// ButtonView — кнопка в собранном представлении узла.
type ButtonView struct {
	ID           int    `json:"id"`
	Label        string `json:"label"`
	TargetNodeID int    `json:"target_node_id"`
	Order        int    `json:"order"`
}

// ImageView — изображение с абсолютным URL.
type ImageView struct {
	ID       int    `json:"id"`
	ImageURL string `json:"image_url"`
	Order    int    `json:"order"`
}

// ChildNodeView — дочерний узел в собранном представлении.
type ChildNodeView struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Text       string     `json:"text"`
	LayoutType LayoutType `json:"layout_type"`
	ParentID   *int       `json:"parent_id"`
}

/// NodeView — внешнее представление узла: атрибуты, активные кнопки по
// порядку, изображения по порядку, активные дочерние узлы.
type NodeView struct {
	ID         int             `json:"id"`
	Title      string          `json:"title"`
	Text       string          `json:"text"`
	LayoutType LayoutType      `json:"layout_type"`
	ParentID   *int            `json:"parent_id"`
	Children   []ChildNodeView `json:"children"`
	Buttons    []ButtonView    `json:"buttons"`
	Images     []ImageView     `json:"images"`
}
