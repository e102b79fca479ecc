package domain

// Table is a mongo collection name
type Table string

const (
	TableAuctions        Table = "auctions"
	TableAuctionEvents   Table = "auction_events"
	TableEscrowAccounts  Table = "escrow_accounts"
	TableEscrowHolds     Table = "escrow_holds"
	TableEscrowEntries   Table = "escrow_entries"
	TableErc721Holdings  Table = "erc721_holdings"
	TableErc721Approvals Table = "erc721_approvals"
	TableHealthCheck     Table = "healthcheck"
)
