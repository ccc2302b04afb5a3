package services

import (
	"errors"

	"github.com/yukikurage/task-assignment-api/internal/models"
)

func (suite *ServiceTestSuite) TestCreateTask_Unassigned() {
	task := suite.createTask("  Write report  ", "")

	suite.NotEmpty(task.ID)
	suite.Equal("Write report", task.Name)
	suite.Equal("", task.AssignedUser)
	suite.Equal(models.UnassignedName, task.AssignedUserName)
	suite.False(task.DateCreated.IsZero())
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestCreateTask_AssignedJoinsPendingTasks() {
	ann := suite.createUser("Ann", "ann@example.com")

	task := suite.createTask("T1", ann.ID)

	suite.Equal(ann.ID, task.AssignedUser)
	suite.Equal("Ann", task.AssignedUserName)
	suite.Equal([]string{task.ID}, suite.reloadUser(ann.ID).PendingTaskIDs())
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestCreateTask_Validation() {
	ann := suite.createUser("Ann", "ann@example.com")

	tests := []struct {
		name  string
		input TaskInput
		want  error
	}{
		{name: "missing name", input: TaskInput{Name: "  ", Deadline: deadline()}, want: ErrTaskNameDeadlineRequired},
		{name: "missing deadline", input: TaskInput{Name: "T"}, want: ErrTaskNameDeadlineRequired},
		{name: "completed and assigned", input: TaskInput{Name: "T", Deadline: deadline(), Completed: true, AssignedUser: ann.ID}, want: ErrCompletedTaskAssignment},
		{name: "malformed assignee", input: TaskInput{Name: "T", Deadline: deadline(), AssignedUser: "nope"}, want: ErrInvalidAssignedUser},
		{name: "missing assignee", input: TaskInput{Name: "T", Deadline: deadline(), AssignedUser: missingID}, want: ErrAssignedUserNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.tasks.CreateTask(suite.ctx, tt.input)
			suite.True(errors.Is(err, tt.want), "got %v", err)
		})
	}

	count, err := suite.tasks.CountTasks(suite.ctx, emptyQuery())
	suite.Require().NoError(err)
	suite.Zero(count)
	suite.True(errors.Is(ErrCompletedTaskAssignment, ErrValidation))
	suite.True(errors.Is(ErrAssignedUserNotFound, ErrNotFound))
}

func (suite *ServiceTestSuite) TestCreateTask_CompletedUnassigned() {
	task, err := suite.tasks.CreateTask(suite.ctx, TaskInput{Name: "Done", Deadline: deadline(), Completed: true})
	suite.Require().NoError(err)
	suite.True(task.Completed)
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceTask_MovesBetweenUsers() {
	ann := suite.createUser("Ann", "ann@example.com")
	bob := suite.createUser("Bob", "bob@example.com")
	task := suite.createTask("T1", ann.ID)

	replaced, err := suite.tasks.ReplaceTask(suite.ctx, task.ID, TaskInput{Name: "T1", Deadline: deadline(), AssignedUser: bob.ID})
	suite.Require().NoError(err)

	suite.Equal(bob.ID, replaced.AssignedUser)
	suite.Equal("Bob", replaced.AssignedUserName)
	suite.Empty(suite.reloadUser(ann.ID).PendingTaskIDs())
	suite.Equal([]string{task.ID}, suite.reloadUser(bob.ID).PendingTaskIDs())
	suite.True(task.DateCreated.Equal(replaced.DateCreated))
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceTask_CompletingUnassigns() {
	ann := suite.createUser("Ann", "ann@example.com")
	task := suite.createTask("T1", ann.ID)

	replaced, err := suite.tasks.ReplaceTask(suite.ctx, task.ID, TaskInput{Name: "T1", Deadline: deadline(), Completed: true})
	suite.Require().NoError(err)

	suite.True(replaced.Completed)
	suite.Equal("", replaced.AssignedUser)
	suite.Equal(models.UnassignedName, replaced.AssignedUserName)
	suite.Empty(suite.reloadUser(ann.ID).PendingTaskIDs())
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceTask_CompletedWithAssigneeRejected() {
	ann := suite.createUser("Ann", "ann@example.com")
	task := suite.createTask("T1", ann.ID)

	_, err := suite.tasks.ReplaceTask(suite.ctx, task.ID, TaskInput{Name: "T1", Deadline: deadline(), Completed: true, AssignedUser: ann.ID})
	suite.True(errors.Is(err, ErrCompletedTaskAssignment))

	// nothing changed
	suite.Equal(ann.ID, suite.reloadTask(task.ID).AssignedUser)
	suite.Equal([]string{task.ID}, suite.reloadUser(ann.ID).PendingTaskIDs())
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceTask_SameAssigneeIsIdempotent() {
	ann := suite.createUser("Ann", "ann@example.com")
	task := suite.createTask("T1", ann.ID)
	input := TaskInput{Name: "T1 renamed", Description: "more", Deadline: deadline(), AssignedUser: ann.ID}

	_, err := suite.tasks.ReplaceTask(suite.ctx, task.ID, input)
	suite.Require().NoError(err)
	_, err = suite.tasks.ReplaceTask(suite.ctx, task.ID, input)
	suite.Require().NoError(err)

	suite.Equal([]string{task.ID}, suite.reloadUser(ann.ID).PendingTaskIDs())
	suite.Equal("more", suite.reloadTask(task.ID).Description)
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceTask_NotFoundAndInvalidID() {
	_, err := suite.tasks.ReplaceTask(suite.ctx, missingID, TaskInput{Name: "T", Deadline: deadline()})
	suite.True(errors.Is(err, ErrTaskNotFound))

	_, err = suite.tasks.ReplaceTask(suite.ctx, "123", TaskInput{Name: "T", Deadline: deadline()})
	suite.True(errors.Is(err, ErrInvalidTaskID))
}

func (suite *ServiceTestSuite) TestReplaceTask_MissingTaskBeforeAssignmentCheck() {
	ann := suite.createUser("Ann", "ann@example.com")

	_, err := suite.tasks.ReplaceTask(suite.ctx, missingID, TaskInput{Name: "T", Deadline: deadline(), Completed: true, AssignedUser: ann.ID})
	suite.True(errors.Is(err, ErrTaskNotFound), "got %v", err)

	_, err = suite.tasks.ReplaceTask(suite.ctx, missingID, TaskInput{Name: "T", Deadline: deadline(), AssignedUser: "nope"})
	suite.True(errors.Is(err, ErrTaskNotFound), "got %v", err)
}

func (suite *ServiceTestSuite) TestReplaceTask_ValidationBeforeLookup() {
	_, err := suite.tasks.ReplaceTask(suite.ctx, missingID, TaskInput{Name: "T"})
	suite.True(errors.Is(err, ErrTaskNameDeadlineRequired))
}

func (suite *ServiceTestSuite) TestDeleteTask_PullsFromAssignee() {
	ann := suite.createUser("Ann", "ann@example.com")
	keep := suite.createTask("keep", ann.ID)
	task := suite.createTask("T1", ann.ID)

	suite.Require().NoError(suite.tasks.DeleteTask(suite.ctx, task.ID))

	suite.Equal([]string{keep.ID}, suite.reloadUser(ann.ID).PendingTaskIDs())
	_, err := suite.tasks.GetTask(suite.ctx, task.ID)
	suite.True(errors.Is(err, ErrTaskNotFound))
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestDeleteTask_NotFound() {
	err := suite.tasks.DeleteTask(suite.ctx, missingID)
	suite.True(errors.Is(err, ErrTaskNotFound))
}

func (suite *ServiceTestSuite) TestGetTask_InvalidID() {
	_, err := suite.tasks.GetTask(suite.ctx, "not-an-id")
	suite.True(errors.Is(err, ErrInvalidTaskID))
	suite.True(errors.Is(err, ErrValidation))
}
