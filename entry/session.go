package entry

import (
	"context"
	"log"
	"sync"

	"lensorder/model"
)

// Backend 는 주문 입력이 쓰는 REST 엔드포인트입니다. *api.Client 가 구현합니다.
type Backend interface {
	Catalog(ctx context.Context) (model.ProductCatalog, error)
	Stores(ctx context.Context, limit int) ([]model.Store, error)
	DiopterGrid(ctx context.Context, productID int) (model.DiopterGridResponse, error)
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.CreatedOrder, error)
}

// Printer 는 등록된 주문서를 출력합니다. *printing.Spooler 가 구현합니다.
type Printer interface {
	PrintOrder(ctx context.Context, orderID int) (string, error)
}

// Notifier 는 안내음을 냅니다. *sound.Player 가 구현합니다.
type Notifier interface {
	PlayError()
	PlayOK()
}

// Session 은 Controller 를 잠금으로 감싸고 Effect 를 고루틴에서 실행합니다.
// 결과는 다시 잠금을 잡고 Controller 에 반영한 뒤 OnChange 로 알립니다.
type Session struct {
	mu   sync.Mutex
	ctrl *Controller

	ctx        context.Context
	backend    Backend
	printer    Printer
	notifier   Notifier
	storeLimit int
	onChange   func()

	wg sync.WaitGroup
}

// SessionOption 은 NewSession 의 선택 인자입니다.
type SessionOption func(*Session)

func WithPrinter(p Printer) SessionOption { return func(s *Session) { s.printer = p } }
func WithNotifier(n Notifier) SessionOption { return func(s *Session) { s.notifier = n } }
func WithStoreLimit(limit int) SessionOption { return func(s *Session) { s.storeLimit = limit } }
func WithOnChange(fn func()) SessionOption { return func(s *Session) { s.onChange = fn } }

func NewSession(ctx context.Context, backend Backend, opts ...SessionOption) *Session {
	s := &Session{
		ctrl:       NewController(),
		ctx:        ctx,
		backend:    backend,
		storeLimit: 1000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start 는 품목/상품 목록과 가맹점 목록을 불러옵니다.
func (s *Session) Start() {
	s.goAsync(func() {
		cat, err := s.backend.Catalog(s.ctx)
		s.apply(func(c *Controller) []Effect {
			if err != nil {
				log.Printf("ERROR: failed to load catalog: %v", err)
				return c.LoadFailed("상품 목록", err)
			}
			return c.SetCatalog(cat)
		})
	})
	s.goAsync(func() {
		stores, err := s.backend.Stores(s.ctx, s.storeLimit)
		s.apply(func(c *Controller) []Effect {
			if err != nil {
				log.Printf("ERROR: failed to load stores: %v", err)
				return c.LoadFailed("가맹점 목록", err)
			}
			return c.SetStores(stores)
		})
	})
}

// Do 는 잠금을 잡고 fn 을 실행한 뒤 돌려받은 Effect 를 처리합니다.
func (s *Session) Do(fn func(c *Controller) []Effect) {
	s.apply(fn)
}

// HandleKey 는 키 하나를 처리합니다.
func (s *Session) HandleKey(k Key) {
	s.Do(func(c *Controller) []Effect { return c.HandleKey(k) })
}

// Read 는 잠금을 잡고 화면 그리기 등 읽기 작업을 합니다. fn 안에서 상태를 바꾸면 안 됩니다.
func (s *Session) Read(fn func(c *Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ctrl)
}

// Wait 는 진행 중인 비동기 작업이 모두 끝날 때까지 기다립니다.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) apply(fn func(c *Controller) []Effect) {
	s.mu.Lock()
	effects := fn(s.ctrl)
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange()
	}
	s.run(effects)
}

func (s *Session) goAsync(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// run 은 Effect 를 실행합니다. 재시도는 하지 않습니다.
func (s *Session) run(effects []Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case LoadStock:
			s.goAsync(func() {
				resp, err := s.backend.DiopterGrid(s.ctx, e.ProductID)
				if err != nil {
					log.Printf("WARN: stock lookup for product %d failed: %v", e.ProductID, err)
				}
				s.apply(func(c *Controller) []Effect { return c.ApplyStock(e.Generation, resp, err) })
			})
		case PostOrder:
			s.goAsync(func() {
				created, err := s.backend.CreateOrder(s.ctx, e.Request)
				if err != nil {
					log.Printf("ERROR: failed to create order: %v", err)
				} else {
					log.Printf("INFO: order %s created (id=%d, items=%d)", created.OrderNo, created.ID, len(e.Request.Items))
				}
				s.apply(func(c *Controller) []Effect { return c.FinishSubmit(created, err) })
			})
		case PrintOrder:
			if s.printer == nil {
				continue
			}
			s.goAsync(func() {
				path, err := s.printer.PrintOrder(s.ctx, e.OrderID)
				if err != nil {
					log.Printf("ERROR: failed to print order %s: %v", e.OrderNo, err)
					s.apply(func(c *Controller) []Effect { return c.PrintFailed(e.OrderNo, err) })
					return
				}
				if path != "" {
					log.Printf("INFO: order %s spooled to %s", e.OrderNo, path)
				}
			})
		case Alert:
			if s.notifier == nil {
				continue
			}
			if e.Level == NoticeInfo {
				s.notifier.PlayOK()
			} else {
				s.notifier.PlayError()
			}
		}
	}
}
