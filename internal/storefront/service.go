package storefront

import (
	"context"

	"golang.org/x/text/language"
)

// Service projects the published catalog into one language.
type Service struct {
	repo Repository
}

// NewService builds the storefront service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Items lists published inventory in the requested language.
func (s *Service) Items(ctx context.Context, filter ListFilter, tag language.Tag) ([]PublicItem, error) {
	rows, err := s.repo.PublishedItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]PublicItem, 0, len(rows))
	for i := range rows {
		result = append(result, projectItem(&rows[i], tag))
	}
	return result, nil
}

// ItemBySlug returns one published item in the requested language.
func (s *Service) ItemBySlug(ctx context.Context, slug string, tag language.Tag) (*PublicItem, error) {
	row, err := s.repo.PublishedItemBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	item := projectItem(row, tag)
	return &item, nil
}

// FeaturedProducts returns the landing-page highlights.
func (s *Service) FeaturedProducts(ctx context.Context, tag language.Tag) ([]PublicProduct, error) {
	rows, err := s.repo.FeaturedProducts(ctx)
	if err != nil {
		return nil, err
	}

	english := isEnglish(tag)
	result := make([]PublicProduct, 0, len(rows))
	for _, p := range rows {
		name := p.NameZh
		desc := p.DescriptionZh
		if english {
			name = p.NameEn
			desc = p.DescriptionEn
		}
		result = append(result, PublicProduct{
			ID:          p.ID,
			Slug:        p.Slug,
			Name:        name,
			Category:    p.Category,
			Designer:    p.Designer,
			Description: desc,
			Images:      p.Images,
		})
	}
	return result, nil
}

func projectItem(row *itemRow, tag language.Tag) PublicItem {
	english := isEnglish(tag)

	name := row.NameZh
	if english && row.NameEn != nil && *row.NameEn != "" {
		name = *row.NameEn
	}
	productName := row.ProductNameZh
	if english && row.ProductNameEn != nil {
		productName = row.ProductNameEn
	}

	return PublicItem{
		ID:             row.ID,
		Slug:           row.Slug,
		Name:           name,
		SKUCode:        row.SKUCode,
		DesignerSeries: row.DesignerSeries,
		Recommendation: row.Recommendation,
		Manufacturer:   row.Manufacturer,
		Era:            row.Era,
		Material:       row.Material,
		Dimensions:     row.Dimensions,
		ConditionGrade: row.ConditionGrade,
		SellingPrice:   row.SellingPrice,
		Status:         row.Status,
		StatusLabel:    statusLabel(row.Status, tag),
		Category:       row.Category,
		ProductName:    productName,
		Images:         row.Images,
	}
}

func isEnglish(tag language.Tag) bool {
	base, _ := tag.Base()
	return base.String() == "en"
}
