// Package schema defines the canonical sales table layout and the
// normalization and validation steps that bring an arbitrary uploaded
// table into it.
package schema

// Canonical column names. The pipeline works with these internally; any
// other spelling in an input file is mapped here by the normalizer.
const (
	ColDate        = "date"
	ColOrderID     = "order_id"
	ColCustomerID  = "customer_id"
	ColProductID   = "product_id"
	ColQuantity    = "quantity"
	ColPrice       = "price"
	ColCost        = "cost"
	ColRegion      = "region"
	ColChannel     = "channel"
	ColStatus      = "status"
	ColCategory    = "category"
	ColProductName = "product_name"
)

// Schema describes the table layout the dashboard expects: the required
// canonical columns, the recognized optional ones, and a many-to-one map
// from cleaned alias spellings to canonical names. Treat values as
// immutable once built.
type Schema struct {
	Required []string
	Optional []string
	Aliases  map[string]string
}

// DefaultSchema returns the sales schema, with aliases covering the
// English and Spanish spellings seen in customer files (including the
// accented "región").
func DefaultSchema() Schema {
	return Schema{
		Required: []string{
			ColDate,
			ColOrderID,
			ColCustomerID,
			ColProductID,
			ColQuantity,
			ColPrice,
			ColCost,
			ColRegion,
			ColChannel,
		},
		Optional: []string{
			ColStatus,
			ColCategory,
			ColProductName,
		},
		Aliases: map[string]string{
			// Date
			"date":  ColDate,
			"fecha": ColDate,

			// IDs
			"order_id":    ColOrderID,
			"id_orden":    ColOrderID,
			"customer_id": ColCustomerID,
			"id_cliente":  ColCustomerID,
			"product_id":  ColProductID,
			"id_producto": ColProductID,

			// Quantities and values
			"qty":      ColQuantity,
			"quantity": ColQuantity,
			"cantidad": ColQuantity,
			"price":    ColPrice,
			"precio":   ColPrice,
			"cost":     ColCost,
			"costo":    ColCost,

			// Dimensions; accented spellings share one canonical name
			"region":  ColRegion,
			"región":  ColRegion,
			"région":  ColRegion,
			"channel": ColChannel,
			"canal":   ColChannel,

			// Optional columns
			"status":          ColStatus,
			"estado":          ColStatus,
			"category":        ColCategory,
			"categoria":       ColCategory,
			"product_name":    ColProductName,
			"nombre_producto": ColProductName,
		},
	}
}
