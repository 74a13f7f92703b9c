package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/enums"
)

type seedEntry struct {
	id       string
	name     string
	price    string
	category enums.ProductCategory
	desc     string
}

var seedEntries = []seedEntry{
	{id: "pi_1", name: "Colt 1911", price: "450.00", category: enums.ProductCategoryPistols},
	{id: "pi_2", name: "Mauser", price: "35.00", category: enums.ProductCategoryPistols},
	{id: "pi_3", name: "Semi-Auto", price: "35.00", category: enums.ProductCategoryPistols},
	{id: "pi_4", name: "Volcanic", price: "35.00", category: enums.ProductCategoryPistols},
	{id: "pi_5", name: "Luger", price: "350.00", category: enums.ProductCategoryPistols},
	{id: "pi_6", name: "1899", price: "450.00", category: enums.ProductCategoryPistols},

	{id: "rv_1", name: "Schofield", price: "10.00", category: enums.ProductCategoryRevolvers},
	{id: "rv_2", name: "Double Action", price: "25.00", category: enums.ProductCategoryRevolvers},
	{id: "rv_3", name: "Navy", price: "35.00", category: enums.ProductCategoryRevolvers},
	{id: "rv_4", name: "LeMat", price: "35.00", category: enums.ProductCategoryRevolvers},
	{id: "rv_5", name: "44 Model 1875", price: "330.00", category: enums.ProductCategoryRevolvers},
	{id: "rv_6", name: "Gambler's", price: "370.00", category: enums.ProductCategoryRevolvers},
	{id: "rv_7", name: "Webley", price: "370.00", category: enums.ProductCategoryRevolvers},
	{id: "rv_8", name: "Walker", price: "450.00", category: enums.ProductCategoryRevolvers},
	{id: "rv_9", name: "Cattleman", price: "5.00", category: enums.ProductCategoryRevolvers},

	{id: "rf_1", name: "Springfield", price: "70.00", category: enums.ProductCategoryRifles},
	{id: "rf_2", name: "Tranquilizer", price: "75.00", category: enums.ProductCategoryRifles},
	{id: "rf_3", name: "Bolt-Action", price: "75.00", category: enums.ProductCategoryRifles},
	{id: "rf_4", name: "Sharps / Martini", price: "350.00", category: enums.ProductCategoryRifles},
	{id: "rf_5", name: "Gewehr 98", price: "400.00", category: enums.ProductCategoryRifles},
	{id: "rf_6", name: "Lee-Enfield", price: "400.00", category: enums.ProductCategoryRifles},
	{id: "rf_7", name: "Mosin", price: "400.00", category: enums.ProductCategoryRifles},
	{id: "rf_8", name: "Elephant Rifle", price: "500.00", category: enums.ProductCategoryRifles},
	{id: "rf_9", name: "Rolling Block", price: "1000.00", category: enums.ProductCategoryRifles},
	{id: "rf_10", name: "Carcano", price: "1000.00", category: enums.ProductCategoryRifles},

	{id: "sg_1", name: "Sawn-Off", price: "35.00", category: enums.ProductCategoryShotguns},
	{id: "sg_2", name: "Double Barrel", price: "45.00", category: enums.ProductCategoryShotguns},
	{id: "sg_3", name: "Semi-Auto", price: "55.00", category: enums.ProductCategoryShotguns},
	{id: "sg_4", name: "Repeating", price: "70.00", category: enums.ProductCategoryShotguns},
	{id: "sg_5", name: "Pump-Action", price: "75.00", category: enums.ProductCategoryShotguns},
	{id: "sg_6", name: "Coach Gun", price: "300.00", category: enums.ProductCategoryShotguns},
	{id: "sg_7", name: "Exotic Double", price: "400.00", category: enums.ProductCategoryShotguns},

	{id: "rp_1", name: "Evans", price: "25.00", category: enums.ProductCategoryRepeaters},
	{id: "rp_2", name: "Carbine", price: "55.00", category: enums.ProductCategoryRepeaters},
	{id: "rp_3", name: "Winchester", price: "55.00", category: enums.ProductCategoryRepeaters},
	{id: "rp_4", name: "Mare's Leg", price: "350.00", category: enums.ProductCategoryRepeaters},
	{id: "rp_5", name: "Henry", price: "370.00", category: enums.ProductCategoryRepeaters},

	{id: "co_1", name: "Gun Oil", price: "0.50", category: enums.ProductCategoryConsumables},
	{id: "co_2", name: "Pistol Ammo", price: "3.00", category: enums.ProductCategoryConsumables},
	{id: "co_3", name: "Gunpowder", price: "1.00", category: enums.ProductCategoryConsumables},
	{id: "co_4", name: "Shell Casting", price: "0.30", category: enums.ProductCategoryConsumables},
	{id: "co_5", name: "Engraving Plate", price: "20.00", category: enums.ProductCategoryConsumables},

	{id: "sp_1", name: "Exotic Double (Master Crafted)", price: "1200.00", category: enums.ProductCategorySpecials, desc: "Limited custom-built shotgun."},
	{id: "sp_2", name: "Engraved Rolling Block Rifle", price: "2500.00", category: enums.ProductCategorySpecials, desc: "Finely engraved long-range rifle."},
	{id: "sp_3", name: "Superior Bow", price: "100.00", category: enums.ProductCategorySpecials, desc: "Superior bow."},
}

// SeedProducts returns the built-in catalog used when neither the remote
// store nor the local cache has a product list.
func SeedProducts() []models.Product {
	products := make([]models.Product, 0, len(seedEntries))
	for _, entry := range seedEntries {
		product := models.Product{
			ID:        entry.id,
			Name:      entry.name,
			Price:     decimal.RequireFromString(entry.price),
			Category:  entry.category,
			IsActive:  true,
			IsSpecial: entry.category == enums.ProductCategorySpecials,
		}
		if entry.desc != "" {
			desc := entry.desc
			product.Description = &desc
		}
		products = append(products, product)
	}
	return products
}
