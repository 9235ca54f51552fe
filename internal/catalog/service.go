package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cometcontrol/comet-backend/pkg/enums"
	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
	"github.com/cometcontrol/comet-backend/pkg/logger"
	"github.com/cometcontrol/comet-backend/pkg/types"
)

// Service exposes catalog reads for the public site and product management
// for the admin surface.
type Service interface {
	ListProducts(ctx context.Context, filter ListFilter) ([]types.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*types.Product, error)
	GetRelatedProducts(ctx context.Context, productID string) ([]types.Product, error)
	ListCategories(ctx context.Context) ([]enums.ProductCategory, error)

	ListAllProducts(ctx context.Context) ([]types.Product, error)
	GetProductByID(ctx context.Context, id string) (*types.Product, error)
	CreateProduct(ctx context.Context, product types.Product) (*types.Product, error)
	UpdateProduct(ctx context.Context, id string, updates map[string]any) (*types.Product, error)
	DeleteProduct(ctx context.Context, id string) (*types.Product, error)
}

// ListFilter narrows public product listings. Zero value lists every active
// product.
type ListFilter struct {
	Category enums.ProductCategory
	Featured bool
	Query    string
	Locale   string
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// ListProducts returns active products matching the filter, preserving
// catalog order.
func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]types.Product, error) {
	products, err := s.active(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Featured && !p.Featured {
			continue
		}
		if filter.Query != "" && !matchesQuery(p, filter.Query, filter.Locale) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// GetProductBySlug returns the product with the given slug regardless of
// status, so detail pages can render discontinued items.
func (s *service) GetProductBySlug(ctx context.Context, slug string) (*types.Product, error) {
	products, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Slug == slug {
			return &products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", slug))
}

// GetRelatedProducts resolves a product's accessory references to the active
// products they point at.
func (s *service) GetRelatedProducts(ctx context.Context, productID string) ([]types.Product, error) {
	products, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	var owner *types.Product
	for i := range products {
		if products[i].ID == productID {
			owner = &products[i]
			break
		}
	}
	if owner == nil {
		return []types.Product{}, nil
	}

	wanted := make(map[string]bool, len(owner.Accessories))
	for _, acc := range owner.Accessories {
		wanted[acc.ProductID] = true
	}

	related := make([]types.Product, 0, len(wanted))
	for _, p := range products {
		if wanted[p.ID] && p.Status == enums.ProductStatusActive {
			related = append(related, p)
		}
	}
	return related, nil
}

// ListCategories returns the distinct categories present in the catalog, in
// first-seen order.
func (s *service) ListCategories(ctx context.Context) ([]enums.ProductCategory, error) {
	products, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[enums.ProductCategory]bool)
	categories := make([]enums.ProductCategory, 0, 4)
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

// ListAllProducts returns every product including inactive ones. Admin only.
func (s *service) ListAllProducts(ctx context.Context) ([]types.Product, error) {
	return s.all(ctx)
}

// GetProductByID returns a single product by ID regardless of status.
func (s *service) GetProductByID(ctx context.Context, id string) (*types.Product, error) {
	products, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", id))
}

// CreateProduct appends a new product to the catalog. Missing identifiers and
// slices are filled so the stored document stays uniform.
func (s *service) CreateProduct(ctx context.Context, product types.Product) (*types.Product, error) {
	applyDefaults(&product)

	err := s.repo.Mutate(func(products []types.Product) ([]types.Product, error) {
		for _, existing := range products {
			if existing.ID == product.ID {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product %q already exists", product.ID))
			}
			if existing.Slug == product.Slug {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("slug %q already in use", product.Slug))
			}
		}
		return append(products, product), nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		s.logg.Error(ctx, "catalog.create.failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to save product")
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID), "catalog.product.created")
	return &product, nil
}

// UpdateProduct merges the provided fields over the stored product. Only keys
// present in updates change; this mirrors a shallow JSON merge.
func (s *service) UpdateProduct(ctx context.Context, id string, updates map[string]any) (*types.Product, error) {
	var updated types.Product

	err := s.repo.Mutate(func(products []types.Product) ([]types.Product, error) {
		idx := -1
		for i := range products {
			if products[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", id))
		}

		merged, err := mergeProduct(products[idx], updates)
		if err != nil {
			return nil, err
		}
		merged.ID = id
		products[idx] = merged
		updated = merged
		return products, nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		s.logg.Error(ctx, "catalog.update.failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update product")
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", id), "catalog.product.updated")
	return &updated, nil
}

// DeleteProduct removes the product and returns the deleted record.
func (s *service) DeleteProduct(ctx context.Context, id string) (*types.Product, error) {
	var deleted types.Product

	err := s.repo.Mutate(func(products []types.Product) ([]types.Product, error) {
		idx := -1
		for i := range products {
			if products[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", id))
		}
		deleted = products[idx]
		return append(products[:idx], products[idx+1:]...), nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		s.logg.Error(ctx, "catalog.delete.failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete product")
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", id), "catalog.product.deleted")
	return &deleted, nil
}

func (s *service) all(ctx context.Context) ([]types.Product, error) {
	products, err := s.repo.All()
	if err != nil {
		s.logg.Error(ctx, "catalog.read.failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load catalog")
	}
	return products, nil
}

func (s *service) active(ctx context.Context) ([]types.Product, error) {
	products, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		if p.Status == enums.ProductStatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func matchesQuery(p types.Product, query, locale string) bool {
	q := strings.ToLower(query)

	name := p.Name.EN
	short := p.ShortDescription.EN
	if locale == "tr" {
		name = p.Name.TR
		short = p.ShortDescription.TR
	}

	if strings.Contains(strings.ToLower(name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(short), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.SKU), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func applyDefaults(p *types.Product) {
	if p.ID == "" {
		p.ID = fmt.Sprintf("prod_%s", uuid.NewString())
	}
	if p.Status == "" {
		p.Status = enums.ProductStatusActive
	}
	if p.Images == nil {
		p.Images = []types.ProductImage{}
	}
	if p.Specifications == nil {
		p.Specifications = []types.SpecificationGroup{}
	}
	if p.Documents == nil {
		p.Documents = []types.ProductDocument{}
	}
	if p.Software == nil {
		p.Software = []types.SoftwareDownload{}
	}
	if p.Accessories == nil {
		p.Accessories = []types.AccessoryReference{}
	}
	if p.Videos == nil {
		p.Videos = []types.ProductVideo{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}
