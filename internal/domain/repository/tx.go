package repository

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos struct {
	Articles   ArticleRepository
	Categories CategoryRepository
	Links      ArticleCategoryRepository
	Movements  MovementRepository
}
