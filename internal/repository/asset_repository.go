package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/asset-maintenance/internal/domain"
)

// AssetRepository manages asset persistence with product classification.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	GetByTag(ctx context.Context, tag string) (*domain.Asset, error)
	List(ctx context.Context, limit, offset int) ([]domain.Asset, error)
}

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository builds the repository.
func NewAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &assetRepository{pool: pool}
}

const assetSelect = `
        SELECT a.id, a.asset_tag, a.name, a.serial_number, a.product_id, a.created_at, a.updated_at,
               p.name, p.group_id, p.type_id, p.category_id,
               g.name, pt.name, c.name
        FROM assets a
        JOIN products p ON p.id = a.product_id
        LEFT JOIN product_groups g ON g.id = p.group_id
        LEFT JOIN product_types pt ON pt.id = p.type_id
        LEFT JOIN product_categories c ON c.id = p.category_id`

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	const query = `
        INSERT INTO assets (asset_tag, name, serial_number, product_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		asset.AssetTag,
		asset.Name,
		asset.SerialNumber,
		asset.ProductID,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)
}

func (r *assetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	return r.fetchSingle(ctx, assetSelect+` WHERE a.id=$1`, id)
}

func (r *assetRepository) GetByTag(ctx context.Context, tag string) (*domain.Asset, error) {
	return r.fetchSingle(ctx, assetSelect+` WHERE a.asset_tag=$1`, tag)
}

func (r *assetRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Asset, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	assets, err := scanAssets(rows)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &assets[0], nil
}

func (r *assetRepository) List(ctx context.Context, limit, offset int) ([]domain.Asset, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := assetSelect + ` ORDER BY a.asset_tag LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssets(rows)
}

func scanAssets(rows pgx.Rows) ([]domain.Asset, error) {
	var result []domain.Asset
	for rows.Next() {
		var (
			asset        domain.Asset
			product      domain.Product
			groupName    *string
			typeName     *string
			categoryName *string
		)
		if err := rows.Scan(
			&asset.ID,
			&asset.AssetTag,
			&asset.Name,
			&asset.SerialNumber,
			&asset.ProductID,
			&asset.CreatedAt,
			&asset.UpdatedAt,
			&product.Name,
			&product.GroupID,
			&product.TypeID,
			&product.CategoryID,
			&groupName,
			&typeName,
			&categoryName,
		); err != nil {
			return nil, err
		}
		product.ID = asset.ProductID
		if product.GroupID != nil && groupName != nil {
			product.Group = &domain.ProductGroup{ID: *product.GroupID, Name: *groupName}
		}
		if product.TypeID != nil && typeName != nil {
			product.Type = &domain.ProductType{ID: *product.TypeID, Name: *typeName}
		}
		if product.CategoryID != nil && categoryName != nil {
			product.Category = &domain.ProductCategory{ID: *product.CategoryID, Name: *categoryName}
		}
		asset.Product = &product
		result = append(result, asset)
	}
	return result, rows.Err()
}
