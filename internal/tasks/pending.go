package tasks

import "context"

func (s *Service) ExtractCreditCard(_ context.Context) (Result, error) {
	return notImplemented("Credit card extraction not yet implemented."), nil
}

func (s *Service) FindSimilarComments(_ context.Context) (Result, error) {
	return notImplemented("Finding similar comments not yet implemented."), nil
}
