package catalog

import (
	"fmt"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
)

// Item пункт меню услуг салона
type Item struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           int
}

// Selection результат резолва выбранных пунктов меню
type Selection struct {
	Items                []Item
	TotalDurationMinutes int
	TotalPrice           int
}

// MenuIDs возвращает список идентификаторов выбранных пунктов
func (s Selection) MenuIDs() []int64 {
	ids := make([]int64, len(s.Items))
	for i, item := range s.Items {
		ids[i] = item.ID
	}
	return ids
}

// ToServiceSelection конвертирует выбор в domain payload записи
func (s Selection) ToServiceSelection() domain.ServiceSelection {
	return domain.ServiceSelection{
		MenuIDs:              s.MenuIDs(),
		TotalDurationMinutes: s.TotalDurationMinutes,
		TotalPrice:           s.TotalPrice,
	}
}

// ToTreatmentServices конвертирует выбор в payload записи об обслуживании
func (s Selection) ToTreatmentServices() domain.TreatmentServices {
	completed := make([]domain.CompletedService, len(s.Items))
	for i, item := range s.Items {
		completed[i] = domain.CompletedService{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
		}
	}
	return domain.TreatmentServices{
		MenuIDs:           s.MenuIDs(),
		CompletedServices: completed,
	}
}

// Catalog read-only справочник меню услуг
// Инжектируется во все компоненты, которым нужен резолв пунктов меню;
// тесты подставляют фикстурный каталог вместо дефолтного
type Catalog struct {
	items map[int64]Item
	order []int64
}

// New создает каталог из списка пунктов
func New(items []Item) *Catalog {
	c := &Catalog{
		items: make(map[int64]Item, len(items)),
		order: make([]int64, 0, len(items)),
	}
	for _, item := range items {
		if _, exists := c.items[item.ID]; exists {
			continue
		}
		c.items[item.ID] = item
		c.order = append(c.order, item.ID)
	}
	return c
}

// Default возвращает каталог с фиксированным меню салона
func Default() *Catalog {
	return New([]Item{
		{ID: 1, Name: "Gel Nail", DurationMinutes: 60, Price: 6000},
		{ID: 2, Name: "Nail Care", DurationMinutes: 30, Price: 3000},
		{ID: 3, Name: "Nail Off", DurationMinutes: 30, Price: 2000},
		{ID: 4, Name: "Foot Nail", DurationMinutes: 90, Price: 7000},
	})
}

// FindByID возвращает пункт меню по идентификатору
func (c *Catalog) FindByID(id int64) (Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// List возвращает все пункты меню в порядке добавления
func (c *Catalog) List() []Item {
	result := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.items[id])
	}
	return result
}

// Resolve резолвит список идентификаторов в выбор услуг
// с суммарными длительностью и ценой
// Возвращает ErrEmptySelection для пустого списка и ErrUnknownMenuItem,
// если хотя бы один идентификатор отсутствует в каталоге
func (c *Catalog) Resolve(menuIDs []int64) (Selection, error) {
	if len(menuIDs) == 0 {
		return Selection{}, ErrEmptySelection
	}

	selection := Selection{Items: make([]Item, 0, len(menuIDs))}
	for _, id := range menuIDs {
		item, ok := c.items[id]
		if !ok {
			return Selection{}, fmt.Errorf("%w: id=%d", ErrUnknownMenuItem, id)
		}
		selection.Items = append(selection.Items, item)
		selection.TotalDurationMinutes += item.DurationMinutes
		selection.TotalPrice += item.Price
	}

	return selection, nil
}
