package main

import (
	"context"
	"fmt"
)

const clockLayout = "02/01/2006 15:04"

func (cli *commandLine) audit(ctx context.Context) error {
	clashes, err := cli.svc.Audit(ctx)
	if err != nil {
		return err
	}
	if len(clashes) == 0 {
		fmt.Fprintln(cli.out, "Không có buổi học nào bị trùng lịch.")
		return nil
	}

	for _, c := range clashes {
		fmt.Fprintf(cli.out, "%s: %s (%s, %s-%s) trùng %s (%s, %s-%s)\n",
			c.TeacherID,
			c.First.ID, c.First.ClassID, c.First.Start.Format(clockLayout), c.First.End.Format("15:04"),
			c.Second.ID, c.Second.ClassID, c.Second.Start.Format(clockLayout), c.Second.End.Format("15:04"),
		)
	}
	fmt.Fprintf(cli.out, "Tìm thấy %d cặp buổi học trùng lịch.\n", len(clashes))
	return nil
}
