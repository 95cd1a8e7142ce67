// Package catalog provides the product catalog service: browsing, search,
// the admin-only product CRUD operations, and the stock helpers the checkout
// flow uses to decrement inventory after an order is placed.
//
// The service is a thin typed layer over the backend REST contract; it holds
// no product state of its own. Stock mutations are read-modify-write against
// the backend and are therefore not atomic across clients; the backend owns
// inventory, this client only mirrors the original storefront's behavior.
package catalog
