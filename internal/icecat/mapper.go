package icecat

import (
	apperrors "github.com/matteonot12/icecat-helper/pkg/errors"

	"github.com/matteonot12/icecat-helper/internal/domain"
)

// mapSheet turns a decoded provider payload into the presentation model.
// ProductName and Brand are required; everything else degrades to empty.
func mapSheet(gtin, language string, p *payload) (*domain.ProductSheet, error) {
	if p.GeneralInfo.ProductName == "" {
		return nil, apperrors.IncompleteRecord("ProductName")
	}
	if p.GeneralInfo.Brand == "" {
		return nil, apperrors.IncompleteRecord("Brand")
	}

	sheet := &domain.ProductSheet{
		GTIN:     gtin,
		Language: language,
		Info: domain.GeneralInfo{
			ProductName:   p.GeneralInfo.ProductName,
			Brand:         p.GeneralInfo.Brand,
			BrandPartCode: p.GeneralInfo.BrandPartCode,
			Description:   description(p.GeneralInfo.SummaryDescription),
		},
		SpecRows:  specRows(p.FeaturesGroups),
		HeroURL:   heroURL(p.Image),
		Gallery:   gallery(p.Gallery),
		Videos:    []domain.Video{},
		Documents: []domain.Document{},
	}

	for _, m := range p.Multimedia {
		if m.IsVideo {
			sheet.Videos = append(sheet.Videos, domain.Video{
				URL:         m.URL,
				Description: m.Description,
			})
		} else {
			sheet.Documents = append(sheet.Documents, domain.Document{
				URL:   m.URL,
				Label: domain.DocumentLabel(m.Description, m.URL),
			})
		}
	}

	return sheet, nil
}

// description prefers the long summary over the short one, empty if neither.
func description(d summaryDescription) string {
	if d.Long != "" {
		return d.Long
	}
	return d.Short
}

// heroURL prefers the 500x500 variant over the high-resolution one.
func heroURL(img imageData) string {
	if img.Pic500x500 != "" {
		return img.Pic500x500
	}
	return img.HighPic
}

// specRows flattens feature groups into ordered (group, feature, value) rows.
func specRows(groups []featuresGroup) []domain.SpecRow {
	rows := []domain.SpecRow{}
	for _, grp := range groups {
		for _, feat := range grp.Features {
			rows = append(rows, domain.SpecRow{
				Group:   grp.FeatureGroup.Name.Value,
				Feature: feat.Feature.Name.Value,
				Value:   feat.PresentationValue,
			})
		}
	}
	return rows
}

// gallery maps gallery items, truncated to domain.MaxGallery entries.
func gallery(items []galleryItem) []domain.GalleryImage {
	if len(items) > domain.MaxGallery {
		items = items[:domain.MaxGallery]
	}
	out := make([]domain.GalleryImage, 0, len(items))
	for _, it := range items {
		out = append(out, domain.GalleryImage{
			ThumbURL: it.ThumbPic,
			FullURL:  it.Pic,
		})
	}
	return out
}
