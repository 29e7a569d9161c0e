package repoargs

type RepositoryName string

const (
	AccountRepoName            RepositoryName = "account"
	TransactionRequestRepoName RepositoryName = "transaction_request"
	ReferralLedgerRepoName     RepositoryName = "referral_ledger"
	NotificationRepoName       RepositoryName = "commission_notification"
)
