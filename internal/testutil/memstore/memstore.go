// Package memstore implementa los repositorios del dominio en memoria para las pruebas
// de los casos de uso. Run toma una copia del estado y la restaura si fn falla, de modo
// que las pruebas observan la misma semántica commit/rollback que la tx de PostgreSQL.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type state struct {
	articles   map[string]entity.Article
	categories map[string]entity.Category
	links      map[entity.ArticleCategory]time.Time
	movements  map[string]entity.Movement
	seq        map[string]int // orden de inserción de movimientos
}

func (s state) clone() state {
	c := state{
		articles:   make(map[string]entity.Article, len(s.articles)),
		categories: make(map[string]entity.Category, len(s.categories)),
		links:      make(map[entity.ArticleCategory]time.Time, len(s.links)),
		movements:  make(map[string]entity.Movement, len(s.movements)),
		seq:        make(map[string]int, len(s.seq)),
	}
	for k, v := range s.articles {
		c.articles[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.links {
		c.links[k] = v
	}
	for k, v := range s.movements {
		c.movements[k] = v
	}
	for k, v := range s.seq {
		c.seq[k] = v
	}
	return c
}

// Store almacén en memoria. Seguro para uso concurrente: Run serializa las transacciones.
type Store struct {
	mu      sync.Mutex
	st      state
	nextSeq int
	failOn  map[string]error
	calls   []string

	Commits   int
	Rollbacks int
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{
		st: state{
			articles:   map[string]entity.Article{},
			categories: map[string]entity.Category{},
			links:      map[entity.ArticleCategory]time.Time{},
			movements:  map[string]entity.Movement{},
			seq:        map[string]int{},
		},
		failOn: map[string]error{},
	}
}

// FailOn hace que la operación op (p. ej. "links.DeleteByArticle") devuelva err.
func (s *Store) FailOn(op string, err error) { s.failOn[op] = err }

func (s *Store) fail(op string) error {
	s.calls = append(s.calls, op)
	return s.failOn[op]
}

// Calls operaciones con punto de falla invocadas, en orden, incluidos tx.Begin y tx.Commit.
func (s *Store) Calls() []string { return append([]string(nil), s.calls...) }

// Run ejecuta fn con repositorios sobre el estado; restaura la copia previa si fn falla.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("tx.Begin"); err != nil {
		return err
	}
	snapshot := s.st.clone()
	if err := fn(s.repos()); err != nil {
		s.st = snapshot
		s.Rollbacks++
		return err
	}
	if err := s.fail("tx.Commit"); err != nil {
		s.st = snapshot
		s.Rollbacks++
		return err
	}
	s.Commits++
	return nil
}

func (s *Store) repos() repository.TxRepos {
	return repository.TxRepos{
		Articles:   &Articles{s: s},
		Categories: &Categories{s: s},
		Links:      &Links{s: s},
		Movements:  &Movements{s: s},
	}
}

// Repos devuelve repositorios fuera de transacción (lecturas y escrituras directas).
func (s *Store) Repos() repository.TxRepos { return s.repos() }

// SeedArticle inserta un artículo directamente.
func (s *Store) SeedArticle(a entity.Article) {
	s.st.articles[a.ID] = a
}

// SeedCategory inserta una categoría directamente.
func (s *Store) SeedCategory(c entity.Category) {
	s.st.categories[c.ID] = c
}

// SeedLink inserta una asociación directamente.
func (s *Store) SeedLink(categoryID, articleID string) {
	s.st.links[entity.ArticleCategory{CategoryID: categoryID, ArticleID: articleID}] = time.Now()
}

// Article devuelve una copia del artículo y si existe.
func (s *Store) Article(id string) (entity.Article, bool) {
	a, ok := s.st.articles[id]
	return a, ok
}

// Category devuelve una copia de la categoría y si existe.
func (s *Store) Category(id string) (entity.Category, bool) {
	c, ok := s.st.categories[id]
	return c, ok
}

// MovementCount número de movimientos del artículo.
func (s *Store) MovementCount(articleID string) int {
	n := 0
	for _, m := range s.st.movements {
		if m.ArticleID == articleID {
			n++
		}
	}
	return n
}

// LinkCount número de asociaciones donde participa el artículo.
func (s *Store) LinkCount(articleID string) int {
	n := 0
	for l := range s.st.links {
		if l.ArticleID == articleID {
			n++
		}
	}
	return n
}

// Articles implementa repository.ArticleRepository.
type Articles struct{ s *Store }

var _ repository.ArticleRepository = (*Articles)(nil)

func (r *Articles) Create(_ context.Context, a *entity.Article) error {
	if err := r.s.fail("articles.Create"); err != nil {
		return err
	}
	if _, ok := r.s.st.articles[a.ID]; ok {
		return &domain.StoreError{Entity: "articulo", Action: "crear", Kind: domain.StoreUniqueViolation, Err: errors.New("duplicate id")}
	}
	r.s.st.articles[a.ID] = *a
	return nil
}

func (r *Articles) GetByID(_ context.Context, id string) (*entity.Article, error) {
	if err := r.s.fail("articles.GetByID"); err != nil {
		return nil, err
	}
	a, ok := r.s.st.articles[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *Articles) GetForUpdate(ctx context.Context, id string) (*entity.Article, error) {
	if err := r.s.fail("articles.GetForUpdate"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *Articles) List(_ context.Context) ([]*entity.Article, error) {
	list := make([]*entity.Article, 0, len(r.s.st.articles))
	for _, a := range r.s.st.articles {
		a := a
		list = append(list, &a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *Articles) ListByCategory(_ context.Context, categoryID string) ([]*entity.Article, error) {
	var list []*entity.Article
	for l := range r.s.st.links {
		if l.CategoryID != categoryID {
			continue
		}
		if a, ok := r.s.st.articles[l.ArticleID]; ok {
			list = append(list, &a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *Articles) ExistsCodeInCategory(_ context.Context, code, categoryID string) (bool, error) {
	if err := r.s.fail("articles.ExistsCodeInCategory"); err != nil {
		return false, err
	}
	for l := range r.s.st.links {
		if l.CategoryID != categoryID {
			continue
		}
		if a, ok := r.s.st.articles[l.ArticleID]; ok && a.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *Articles) FindByName(_ context.Context, name string) ([]entity.ArticleCategoryRef, error) {
	var out []entity.ArticleCategoryRef
	for l := range r.s.st.links {
		a, ok := r.s.st.articles[l.ArticleID]
		if !ok || a.Name != name {
			continue
		}
		c := r.s.st.categories[l.CategoryID]
		out = append(out, entity.ArticleCategoryRef{
			ArticleID: a.ID, Code: a.Code, Name: a.Name,
			CategoryID: c.ID, CategoryName: c.Name, CategoryIcon: c.Icon,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryName != out[j].CategoryName {
			return out[i].CategoryName < out[j].CategoryName
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (r *Articles) Update(_ context.Context, a *entity.Article) (int64, error) {
	if err := r.s.fail("articles.Update"); err != nil {
		return 0, err
	}
	cur, ok := r.s.st.articles[a.ID]
	if !ok {
		return 0, nil
	}
	cur.Code, cur.Name, cur.Unit, cur.Detail = a.Code, a.Name, a.Unit, a.Detail
	cur.Expiration, cur.Other, cur.UpdatedAt = a.Expiration, a.Other, a.UpdatedAt
	r.s.st.articles[a.ID] = cur
	return 1, nil
}

func (r *Articles) UpdateStock(_ context.Context, id string, stock decimal.Decimal) (int64, error) {
	if err := r.s.fail("articles.UpdateStock"); err != nil {
		return 0, err
	}
	a, ok := r.s.st.articles[id]
	if !ok {
		return 0, nil
	}
	if stock.IsNegative() {
		return 0, &domain.StoreError{Entity: "articulo", Action: "actualizar_stock", Kind: domain.StoreCheckViolation, Err: errors.New("stock_non_negative")}
	}
	a.Stock = stock
	r.s.st.articles[id] = a
	return 1, nil
}

func (r *Articles) Delete(_ context.Context, id string) (int64, error) {
	if err := r.s.fail("articles.Delete"); err != nil {
		return 0, err
	}
	if _, ok := r.s.st.articles[id]; !ok {
		return 0, nil
	}
	for _, m := range r.s.st.movements {
		if m.ArticleID == id {
			return 0, fkViolation("articulo", "eliminar")
		}
	}
	for l := range r.s.st.links {
		if l.ArticleID == id {
			return 0, fkViolation("articulo", "eliminar")
		}
	}
	delete(r.s.st.articles, id)
	return 1, nil
}

func fkViolation(entityName, action string) error {
	return &domain.StoreError{Entity: entityName, Action: action, Kind: domain.StoreForeignKeyViolation, Err: errors.New("foreign key violation")}
}

// Categories implementa repository.CategoryRepository.
type Categories struct{ s *Store }

var _ repository.CategoryRepository = (*Categories)(nil)

func (r *Categories) Create(_ context.Context, c *entity.Category) error {
	if err := r.s.fail("categories.Create"); err != nil {
		return err
	}
	for _, cur := range r.s.st.categories {
		if cur.Name == c.Name {
			return &domain.StoreError{Entity: "categoria", Action: "crear", Kind: domain.StoreUniqueViolation, Err: errors.New("categories_name_key")}
		}
	}
	r.s.st.categories[c.ID] = *c
	return nil
}

func (r *Categories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.s.st.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *Categories) GetForUpdate(ctx context.Context, id string) (*entity.Category, error) {
	if err := r.s.fail("categories.GetForUpdate"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *Categories) ExistsName(_ context.Context, name, excludeID string) (bool, error) {
	for _, c := range r.s.st.categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *Categories) ListWithCounts(_ context.Context) ([]entity.CategoryWithCount, error) {
	out := make([]entity.CategoryWithCount, 0, len(r.s.st.categories))
	for _, c := range r.s.st.categories {
		n := 0
		for l := range r.s.st.links {
			if l.CategoryID == c.ID {
				n++
			}
		}
		out = append(out, entity.CategoryWithCount{Category: c, TotalArticles: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Categories) ListByArticle(_ context.Context, articleID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for l := range r.s.st.links {
		if l.ArticleID != articleID {
			continue
		}
		if c, ok := r.s.st.categories[l.CategoryID]; ok {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Categories) Update(_ context.Context, c *entity.Category) (int64, error) {
	cur, ok := r.s.st.categories[c.ID]
	if !ok {
		return 0, nil
	}
	cur.Name, cur.Icon, cur.Description = c.Name, c.Icon, c.Description
	r.s.st.categories[c.ID] = cur
	return 1, nil
}

func (r *Categories) Delete(_ context.Context, id string) (int64, error) {
	if err := r.s.fail("categories.Delete"); err != nil {
		return 0, err
	}
	if _, ok := r.s.st.categories[id]; !ok {
		return 0, nil
	}
	for l := range r.s.st.links {
		if l.CategoryID == id {
			return 0, fkViolation("categoria", "eliminar")
		}
	}
	delete(r.s.st.categories, id)
	return 1, nil
}

// Links implementa repository.ArticleCategoryRepository.
type Links struct{ s *Store }

var _ repository.ArticleCategoryRepository = (*Links)(nil)

func (r *Links) Create(_ context.Context, l entity.ArticleCategory) error {
	if err := r.s.fail("links.Create"); err != nil {
		return err
	}
	if _, ok := r.s.st.articles[l.ArticleID]; !ok {
		return fkViolation("categoria_articulo", "crear")
	}
	if _, ok := r.s.st.categories[l.CategoryID]; !ok {
		return fkViolation("categoria_articulo", "crear")
	}
	if _, ok := r.s.st.links[l]; ok {
		return &domain.StoreError{Entity: "categoria_articulo", Action: "crear", Kind: domain.StoreUniqueViolation, Err: errors.New("pkey")}
	}
	r.s.st.links[l] = time.Now()
	return nil
}

func (r *Links) Exists(_ context.Context, l entity.ArticleCategory) (bool, error) {
	_, ok := r.s.st.links[l]
	return ok, nil
}

func (r *Links) CountByCategory(_ context.Context, categoryID string) (int, error) {
	if err := r.s.fail("links.CountByCategory"); err != nil {
		return 0, err
	}
	n := 0
	for l := range r.s.st.links {
		if l.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *Links) Delete(_ context.Context, l entity.ArticleCategory) (int64, error) {
	if _, ok := r.s.st.links[l]; !ok {
		return 0, nil
	}
	delete(r.s.st.links, l)
	return 1, nil
}

func (r *Links) DeleteByArticle(_ context.Context, articleID string) (int64, error) {
	if err := r.s.fail("links.DeleteByArticle"); err != nil {
		return 0, err
	}
	var n int64
	for l := range r.s.st.links {
		if l.ArticleID == articleID {
			delete(r.s.st.links, l)
			n++
		}
	}
	return n, nil
}

func (r *Links) DeleteByCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for l := range r.s.st.links {
		if l.CategoryID == categoryID {
			delete(r.s.st.links, l)
			n++
		}
	}
	return n, nil
}

// Movements implementa repository.MovementRepository.
type Movements struct{ s *Store }

var _ repository.MovementRepository = (*Movements)(nil)

func (r *Movements) Create(_ context.Context, m *entity.Movement) error {
	if err := r.s.fail("movements.Create"); err != nil {
		return err
	}
	if _, ok := r.s.st.articles[m.ArticleID]; !ok {
		return fkViolation("movimiento", "crear")
	}
	if m.Action == entity.MovementEntrada && m.UnitCost == nil {
		return &domain.StoreError{Entity: "movimiento", Action: "crear", Kind: domain.StoreCheckViolation, Err: fmt.Errorf("unit_cost requerido")}
	}
	r.s.st.movements[m.ID] = *m
	r.s.nextSeq++
	r.s.st.seq[m.ID] = r.s.nextSeq
	return nil
}

func (r *Movements) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	m, ok := r.s.st.movements[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *Movements) withArticle(m entity.Movement) entity.MovementWithArticle {
	a := r.s.st.articles[m.ArticleID]
	return entity.MovementWithArticle{Movement: m, ArticleCode: a.Code, ArticleName: a.Name}
}

func (r *Movements) ListByArticle(_ context.Context, articleID string) ([]entity.MovementWithArticle, error) {
	var out []entity.MovementWithArticle
	for _, m := range r.sorted(articleID) {
		out = append(out, r.withArticle(m))
	}
	// más reciente primero
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *Movements) List(_ context.Context, limit, offset int) ([]entity.MovementWithArticle, error) {
	all := r.sorted("")
	var out []entity.MovementWithArticle
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, r.withArticle(all[i]))
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *Movements) ListChronological(_ context.Context, articleID string) ([]entity.Movement, error) {
	return r.sorted(articleID), nil
}

func (r *Movements) sorted(articleID string) []entity.Movement {
	var out []entity.Movement
	for _, m := range r.s.st.movements {
		if articleID == "" || strings.EqualFold(m.ArticleID, articleID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.st.seq[out[i].ID] < r.s.st.seq[out[j].ID] })
	return out
}

func (r *Movements) Delete(_ context.Context, id string) (int64, error) {
	if err := r.s.fail("movements.Delete"); err != nil {
		return 0, err
	}
	if _, ok := r.s.st.movements[id]; !ok {
		return 0, nil
	}
	delete(r.s.st.movements, id)
	delete(r.s.st.seq, id)
	return 1, nil
}

func (r *Movements) DeleteByArticle(_ context.Context, articleID string) (int64, error) {
	if err := r.s.fail("movements.DeleteByArticle"); err != nil {
		return 0, err
	}
	var n int64
	for id, m := range r.s.st.movements {
		if m.ArticleID == articleID {
			delete(r.s.st.movements, id)
			delete(r.s.st.seq, id)
			n++
		}
	}
	return n, nil
}
