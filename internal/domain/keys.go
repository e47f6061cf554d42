package domain

// KeyPrefix namespaces every key finsearch writes to the store.
const KeyPrefix = "finsearch:"

// CatalogPrefix is the hash key prefix for catalog items.
const CatalogPrefix = KeyPrefix + "products:"

// CatalogIndexName is the FT index over the catalog hashes.
const CatalogIndexName = CatalogPrefix + "idx"
