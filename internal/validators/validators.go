// Package validators содержит проверки целостности дерева узлов.
// Все проверки читают текущее состояние через TreeReader и вызываются
// хранилищем внутри той же транзакции, что и запись, — уникальные
// констрейнты БД остаются последней линией защиты от гонок.
package validators

import (
	"context"
	"fmt"

	"hrbot/internal/apperrors"
	"hrbot/internal/models"
)

// TreeReader — доступ на чтение к зафиксированному состоянию дерева.
// Реализуется репозиторием поверх пула или открытой транзакции.
type TreeReader interface {
	// ParentID возвращает parent_id узла и признак его существования.
	ParentID(ctx context.Context, nodeID int) (*int, bool, error)
	// RootNodeID возвращает id узла с parent_id IS NULL, если он есть.
	RootNodeID(ctx context.Context) (*int, error)
	HasChildren(ctx context.Context, nodeID int) (bool, error)
	TitleTaken(ctx context.Context, title string, excludeID int) (bool, error)
	ButtonSlotTaken(ctx context.Context, sourceNodeID, order, excludeID int) (bool, error)
	ButtonEdgeTaken(ctx context.Context, sourceNodeID, targetNodeID, excludeID int) (bool, error)
	ButtonLabelTaken(ctx context.Context, sourceNodeID int, label string, excludeID int) (bool, error)
	ImageSlotTaken(ctx context.Context, nodeID, order, excludeID int) (bool, error)
	ImageFileNameTaken(ctx context.Context, nodeID int, fileName string, excludeID int) (bool, error)
	CountImages(ctx context.Context, nodeID, excludeID int) (int, error)
}

// CheckSingleRoot запрещает второй корневой узел. nodeID исключает сам
// обновляемый узел (0 — создание).
func CheckSingleRoot(ctx context.Context, tr TreeReader, parentID *int, nodeID int) error {
	if parentID != nil {
		return nil
	}
	rootID, err := tr.RootNodeID(ctx)
	if err != nil {
		return err
	}
	if rootID != nil && (nodeID == 0 || *rootID != nodeID) {
		return apperrors.Validation("нельзя создавать больше одного корневого узла")
	}
	return nil
}

// CheckNoCycle проверяет, что назначение нового родителя не создаёт цикл.
// Обход предков итеративный, с защитой от повторных посещений: оборванная
// ссылка на предка считается границей дерева, а не ошибкой.
func CheckNoCycle(ctx context.Context, tr TreeReader, nodeID int, parentID *int) error {
	if nodeID == 0 || parentID == nil {
		return nil
	}
	visited := map[int]struct{}{}
	current := *parentID
	for {
		if current == nodeID {
			return apperrors.Validation("выбранный узел-родитель создаёт цикл в дереве")
		}
		if _, seen := visited[current]; seen {
			return apperrors.Validation("выбранный узел-родитель создаёт цикл в дереве")
		}
		visited[current] = struct{}{}

		parent, found, err := tr.ParentID(ctx, current)
		if err != nil {
			return err
		}
		if !found || parent == nil {
			return nil
		}
		current = *parent
	}
}

// CheckCanDeactivate запрещает деактивацию узла с дочерними узлами,
// независимо от их собственного флага активности.
func CheckCanDeactivate(ctx context.Context, tr TreeReader, nodeID int) error {
	has, err := tr.HasChildren(ctx, nodeID)
	if err != nil {
		return err
	}
	if has {
		return apperrors.Validation("узел имеет дочерние узлы")
	}
	return nil
}

// CheckCanDelete запрещает удаление корневого узла и узла с потомками.
func CheckCanDelete(ctx context.Context, tr TreeReader, nodeID int, parentID *int) error {
	if parentID == nil {
		return apperrors.Validation("нельзя удалить корневой узел")
	}
	has, err := tr.HasChildren(ctx, nodeID)
	if err != nil {
		return err
	}
	if has {
		return apperrors.Validation("нельзя удалить узел с потомками")
	}
	return nil
}

func CheckTitleUnique(ctx context.Context, tr TreeReader, title string, excludeID int) error {
	taken, err := tr.TitleTaken(ctx, title, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Validation(fmt.Sprintf("узел %q уже существует", title))
	}
	return nil
}

func CheckUniqueButtonSlot(ctx context.Context, tr TreeReader, sourceNodeID, order, excludeID int) error {
	taken, err := tr.ButtonSlotTaken(ctx, sourceNodeID, order, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Validation("кнопка с таким порядком уже существует для этого узла")
	}
	return nil
}

func CheckUniqueButtonEdge(ctx context.Context, tr TreeReader, sourceNodeID, targetNodeID, excludeID int) error {
	if sourceNodeID == targetNodeID {
		return apperrors.Validation("кнопка не может вести в тот же узел")
	}
	taken, err := tr.ButtonEdgeTaken(ctx, sourceNodeID, targetNodeID, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Validation("между этими двумя узлами уже есть кнопка")
	}
	return nil
}

func CheckUniqueButtonLabel(ctx context.Context, tr TreeReader, sourceNodeID int, label string, excludeID int) error {
	taken, err := tr.ButtonLabelTaken(ctx, sourceNodeID, label, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Validation(fmt.Sprintf("кнопка %q уже существует в узле", label))
	}
	return nil
}

func CheckUniqueImageSlot(ctx context.Context, tr TreeReader, nodeID, order, excludeID int) error {
	taken, err := tr.ImageSlotTaken(ctx, nodeID, order, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Validation("изображение с таким порядком уже существует для этого узла")
	}
	return nil
}

func CheckUniqueImageFileName(ctx context.Context, tr TreeReader, nodeID int, fileName string, excludeID int) error {
	taken, err := tr.ImageFileNameTaken(ctx, nodeID, fileName, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Validation("в этом узле уже есть изображение с таким именем файла")
	}
	return nil
}

// CheckImageAttachment проверяет лимит изображений по типу узла:
// TEXT запрещает изображения, TEXT_IMAGE допускает одно, GALLERY — десять.
func CheckImageAttachment(ctx context.Context, tr TreeReader, node *models.Node, isNew bool, excludeID int) error {
	if node.LayoutType == models.LayoutText {
		return apperrors.Validation("к узлу с типом TEXT нельзя прикреплять изображения")
	}

	count, err := tr.CountImages(ctx, node.ID, excludeID)
	if err != nil {
		return err
	}
	if isNew {
		count++
	}

	if node.LayoutType == models.LayoutTextImage && count > models.TextImageNum {
		return apperrors.Validation("к узлу типа TEXT_IMAGE можно прикрепить только одно изображение")
	}
	if node.LayoutType == models.LayoutGallery && count > models.GalleryNum {
		return apperrors.Validation("к узлу типа GALLERY можно прикрепить не более 10 изображений")
	}
	return nil
}
