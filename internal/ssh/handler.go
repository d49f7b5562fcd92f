package ssh

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bts "github.com/charmbracelet/wish/bubbletea"

	"github.com/DarthTigerson/pico-writer/internal/app"
	"github.com/DarthTigerson/pico-writer/internal/config"
)

// NewHandler returns a Bubble Tea handler that builds a fresh app per SSH
// session. A session that cannot open the library is told why and dropped.
func NewHandler(cfg config.Config) bts.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		a, err := app.New(cfg)
		if err != nil {
			wish.Fatalln(sess, "pico-writer:", err)
			return nil, nil
		}

		opts := []tea.ProgramOption{
			tea.WithAltScreen(),
			// A dropped connection quits the program without a key ever
			// reaching Update, so release the session's resources here.
			tea.WithFilter(func(_ tea.Model, msg tea.Msg) tea.Msg {
				if _, ok := msg.(tea.QuitMsg); ok {
					a.Close()
				}
				return msg
			}),
		}
		opts = append(opts, bts.MakeOptions(sess)...)

		return a, opts
	}
}
